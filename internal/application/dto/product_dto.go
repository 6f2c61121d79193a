package dto

import "github.com/shopspring/decimal"

// ProductResponse producto resuelto en el catálogo del ERP.
type ProductResponse struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Barcode  string          `json:"barcode"`
	Barcode2 string          `json:"barcode2,omitempty"`
	Barcode3 string          `json:"barcode3,omitempty"`
	OnHand   decimal.Decimal `json:"onHand"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
	Limit int               `json:"limit"`
}
