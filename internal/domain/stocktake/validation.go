// Package stocktake contiene las reglas de dominio del sayım (conteo de inventario):
// validación de envíos, políticas de compatibilidad y secuenciación de identificadores.
package stocktake

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
)

// Límites del flujo de sayım.
const (
	MaxLines             = 1000
	MaxProductNameLength = 100
	MaxProductListLimit  = 10000
)

// Reason código estable de rechazo; los clientes ramifican sobre él, no sobre el texto.
type Reason string

const (
	ReasonMissingOperator         Reason = "MISSING_OPERATOR"
	ReasonEmptyLineSet            Reason = "EMPTY_LINE_SET"
	ReasonTooManyLines            Reason = "TOO_MANY_LINES"
	ReasonInvalidProductID        Reason = "INVALID_PRODUCT_ID"
	ReasonInvalidBarcode          Reason = "INVALID_BARCODE"
	ReasonInvalidProductName      Reason = "INVALID_PRODUCT_NAME"
	ReasonNegativeOnHand          Reason = "NEGATIVE_ON_HAND"
	ReasonNegativeCountedQuantity Reason = "NEGATIVE_COUNTED_QUANTITY"
	ReasonInjectionRisk           Reason = "INJECTION_RISK"
	ReasonInvalidLimit            Reason = "INVALID_LIMIT"
)

// ValidationError rechazo de un envío. Line es 1-based; 0 = cabecera.
type ValidationError struct {
	Reason  Reason
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("detay %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func reject(reason Reason, line int, msg string) *ValidationError {
	return &ValidationError{Reason: reason, Line: line, Message: msg}
}

var (
	barcodePattern     = regexp.MustCompile(`^[0-9]{8,13}$`)
	productCodePattern = regexp.MustCompile(`^[A-Za-z0-9\-_]{1,20}$`)

	injectionPatterns = []string{
		"'", "\"", ";", "--", "/*", "*/", "xp_", "sp_",
		"exec", "execute", "select", "insert", "update",
		"delete", "drop", "create", "alter", "union",
	}
)

// IsValidBarcode acepta exactamente 8 a 13 dígitos ASCII (tras recortar espacios).
func IsValidBarcode(barcode string) bool {
	b := strings.TrimSpace(barcode)
	if b == "" {
		return false
	}
	return barcodePattern.MatchString(b)
}

// IsValidProductCode formato de código de material del ERP.
func IsValidProductCode(code string) bool {
	c := strings.TrimSpace(code)
	if c == "" {
		return false
	}
	return productCodePattern.MatchString(c)
}

// ContainsInjectionRisk lista negra de subcadenas asociadas a sintaxis SQL (sin distinguir mayúsculas).
// No es un parser: el almacenamiento usa siempre consultas parametrizadas.
func ContainsInjectionRisk(input string) bool {
	if input == "" {
		return false
	}
	lower := strings.ToLower(input)
	for _, p := range injectionPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// ValidateLimit comprueba 1 <= limit <= max.
func ValidateLimit(limit, max int) error {
	if limit <= 0 || limit > max {
		return reject(ReasonInvalidLimit, 0, fmt.Sprintf("limit debe estar entre 1 y %d", max))
	}
	return nil
}

// productNameLength longitud en caracteres (NFC) tras recortar.
func productNameLength(name string) int {
	return utf8.RuneCountInString(norm.NFC.String(strings.TrimSpace(name)))
}

// Validate decide si un sayım candidato es aceptable antes de asignar identificadores o escribir.
// Función pura. Devuelve *ValidationError con la primera línea ofensora, o domain.ErrPrecondition
// si el candidato es nulo.
func Validate(st *entity.StockTake) error {
	if st == nil {
		return fmt.Errorf("%w: sayım nulo", domain.ErrPrecondition)
	}
	if strings.TrimSpace(st.OperatorID) == "" {
		return reject(ReasonMissingOperator, 0, "geçersiz kullanıcı ID")
	}
	if len(st.Lines) == 0 {
		return reject(ReasonEmptyLineSet, 0, "sayım detayları boş olamaz")
	}
	if len(st.Lines) > MaxLines {
		return reject(ReasonTooManyLines, 0, fmt.Sprintf("sayım detayları %d'den fazla olamaz", MaxLines))
	}
	for i := range st.Lines {
		if err := ValidateLine(&st.Lines[i]); err != nil {
			err.Line = i + 1
			return err
		}
	}
	return nil
}

// ValidateLine aplica las reglas de una línea. Line queda en 0; Validate la completa.
func ValidateLine(l *entity.StockTakeLine) *ValidationError {
	if l.ProductID <= 0 {
		return reject(ReasonInvalidProductID, 0, "geçersiz ürün ID")
	}
	if !IsValidBarcode(l.Barcode) {
		return reject(ReasonInvalidBarcode, 0, "geçersiz barkod formatı (8-13 haneli sayısal)")
	}
	if n := productNameLength(l.ProductName); n < 1 || n > MaxProductNameLength {
		return reject(ReasonInvalidProductName, 0, fmt.Sprintf("ürün adı 1-%d karakter arasında olmalıdır", MaxProductNameLength))
	}
	if l.OnHand.IsNegative() {
		return reject(ReasonNegativeOnHand, 0, "mevcut stok negatif olamaz")
	}
	if l.CountedQty.IsNegative() {
		return reject(ReasonNegativeCountedQuantity, 0, "sayılan miktar negatif olamaz")
	}
	return nil
}

// ValidateLookupBarcode validación del barcode crudo que llega por la ruta de búsqueda.
// El escaneo de lista negra va antes del formato para que el motivo sea INJECTION_RISK.
func ValidateLookupBarcode(raw string, denylist bool) (string, error) {
	b := strings.TrimSpace(raw)
	if b == "" {
		return "", reject(ReasonInvalidBarcode, 0, "barkod boş veya geçersiz olamaz")
	}
	if denylist && ContainsInjectionRisk(b) {
		return "", reject(ReasonInjectionRisk, 0, "geçersiz karakterler içeren barkod")
	}
	if !IsValidBarcode(b) {
		return "", reject(ReasonInvalidBarcode, 0, "barkod formatı geçersiz. 8-13 haneli sayısal değer olmalıdır")
	}
	return b, nil
}
