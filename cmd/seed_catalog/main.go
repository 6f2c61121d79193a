// seed_catalog genera un script SQL para poblar la tabla products a partir del export CSV
// del maestro de materiales del ERP (Logo). El export sale en Windows-1254 con ';' como separador
// y coma decimal.
//
// Uso: go run ./cmd/seed_catalog [ruta/malzemeler.csv] [salida.sql]
// Por defecto lee malzemeler.csv del directorio actual y escribe
// internal/infrastructure/postgres/seeds/products.sql
//
// Columnas esperadas (con cabecera):
// logicalRef;malzemeKodu;malzemeAdi;barkod;barkod2;barkod3;birim;birimFiyat;mevcutStok;aktif
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/stocktake"
)

const columns = 10

func main() {
	csvPath := "malzemeler.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "products.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, skipped, err := readProducts(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d filas descartadas\n", outPath, len(products), skipped)
}

// readProducts decodifica el CSV (Windows-1254) y devuelve los productos válidos.
// Las filas con id, código o barcode inválido se descartan y se informan por stderr.
func readProducts(r io.Reader) ([]catalogRow, int, error) {
	reader := csv.NewReader(transform.NewReader(r, charmap.Windows1254.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		products []catalogRow
		skipped  int
		row      int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		row++
		if row == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "logicalRef") {
			continue
		}
		cr, err := parseRecord(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fila %d descartada: %v\n", row, err)
			skipped++
			continue
		}
		products = append(products, cr)
	}
	return products, skipped, nil
}

// catalogRow producto más su estado en el ERP; los inactivos se cargan pero no se resuelven.
type catalogRow struct {
	product *entity.Product
	active  bool
}

func parseRecord(rec []string) (catalogRow, error) {
	if len(rec) < columns {
		return catalogRow{}, fmt.Errorf("se esperaban %d columnas, hay %d", columns, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil || id <= 0 {
		return catalogRow{}, fmt.Errorf("logicalRef inválido %q", rec[0])
	}
	if !stocktake.IsValidProductCode(rec[1]) {
		return catalogRow{}, fmt.Errorf("malzemeKodu inválido %q", rec[1])
	}
	if !stocktake.IsValidBarcode(rec[3]) {
		return catalogRow{}, fmt.Errorf("barkod inválido %q", rec[3])
	}
	price, err := parseTurkishDecimal(rec[7])
	if err != nil {
		return catalogRow{}, fmt.Errorf("birimFiyat: %w", err)
	}
	onHand, err := parseTurkishDecimal(rec[8])
	if err != nil {
		return catalogRow{}, fmt.Errorf("mevcutStok: %w", err)
	}
	active := rec[9] == "" || rec[9] == "1" || strings.EqualFold(rec[9], "true") || strings.EqualFold(rec[9], "evet")

	return catalogRow{
		product: &entity.Product{
			ID:       id,
			Code:     rec[1],
			Name:     norm.NFC.String(rec[2]),
			Barcode:  rec[3],
			Barcode2: optionalBarcode(rec[4]),
			Barcode3: optionalBarcode(rec[5]),
			Unit:     rec[6],
			Price:    price,
			OnHand:   onHand,
		},
		active: active,
	}, nil
}

// parseTurkishDecimal "1.234,50" -> 1234.50; vacío = 0.
func parseTurkishDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func optionalBarcode(s string) string {
	if stocktake.IsValidBarcode(s) {
		return s
	}
	return ""
}

func writeSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Maestro de materiales (Logo)\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	for _, r := range rows {
		p := r.product
		fmt.Fprintf(&b, "INSERT INTO products (id, code, name, barcode, barcode2, barcode3, on_hand, unit, price, active)\n")
		fmt.Fprintf(&b, "VALUES (%d, '%s', '%s', '%s', '%s', '%s', %s, '%s', %s, %t)\n",
			p.ID, escapeSQL(p.Code), escapeSQL(p.Name), p.Barcode, p.Barcode2, p.Barcode3,
			p.OnHand.String(), escapeSQL(p.Unit), p.Price.String(), r.active)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, barcode = EXCLUDED.barcode,\n")
		b.WriteString("  barcode2 = EXCLUDED.barcode2, barcode3 = EXCLUDED.barcode3, on_hand = EXCLUDED.on_hand,\n")
		b.WriteString("  unit = EXCLUDED.unit, price = EXCLUDED.price, active = EXCLUDED.active;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
