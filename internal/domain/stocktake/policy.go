package stocktake

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
)

// LegacyProductID id que reciben los productos enviados con id 0 por clientes antiguos.
const LegacyProductID int64 = 1

// Policy decisiones de compatibilidad aplicadas en el borde de aceptación.
type Policy struct {
	// ProductIDFallback convierte productId 0 en LegacyProductID. Los negativos se rechazan siempre.
	ProductIDFallback bool
	// RecomputeVariance recalcula fark = sayılan - mevcut; si es false se confía en el cliente.
	RecomputeVariance bool
	// BarcodeDenylist activa el escaneo de subcadenas SQL en la búsqueda por barcode.
	BarcodeDenylist bool
}

// DefaultPolicy comportamiento de los clientes existentes.
func DefaultPolicy() Policy {
	return Policy{ProductIDFallback: true, RecomputeVariance: true, BarcodeDenylist: true}
}

// Apply normaliza las líneas del candidato antes de validar. Modifica st en sitio.
func (p Policy) Apply(st *entity.StockTake) {
	if st == nil {
		return
	}
	for i := range st.Lines {
		l := &st.Lines[i]
		if p.ProductIDFallback && l.ProductID == 0 {
			l.ProductID = LegacyProductID
		}
		if p.RecomputeVariance {
			l.Variance = l.CountedQty.Sub(l.OnHand)
		}
	}
}

// Normalize recorta espacios de los campos de texto y pasa el nombre a NFC, de modo que lo que se
// valida es exactamente lo que se almacena. Modifica st en sitio.
func Normalize(st *entity.StockTake) {
	if st == nil {
		return
	}
	st.OperatorID = strings.TrimSpace(st.OperatorID)
	for i := range st.Lines {
		l := &st.Lines[i]
		l.ProductCode = strings.TrimSpace(l.ProductCode)
		l.ProductName = norm.NFC.String(strings.TrimSpace(l.ProductName))
		l.Barcode = strings.TrimSpace(l.Barcode)
		l.Unit = strings.TrimSpace(l.Unit)
		l.MaterialCode = strings.TrimSpace(l.MaterialCode)
		l.WarehouseCode = strings.TrimSpace(l.WarehouseCode)
	}
}
