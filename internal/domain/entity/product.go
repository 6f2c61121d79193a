package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo del ERP tal como lo resuelve una búsqueda por barcode.
// Barcode2 y Barcode3 son los códigos alternativos (SPECODE2/SPECODE3 en Logo).
type Product struct {
	ID       int64
	Code     string
	Name     string
	Barcode  string
	Barcode2 string
	Barcode3 string
	OnHand   decimal.Decimal
	Unit     string
	Price    decimal.Decimal
}

// MatchesBarcode indica si el valor coincide con el código o cualquiera de sus barcodes.
func (p *Product) MatchesBarcode(value string) bool {
	if value == "" {
		return false
	}
	return p.Barcode == value || p.Barcode2 == value || p.Barcode3 == value || p.Code == value
}
