package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTakeLineRequest línea enviada por el terminal. ID es el id de línea (0 = asignar);
// ProductID el producto.
type StockTakeLineRequest struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"productId"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	OnHand        decimal.Decimal `json:"onHand"`
	CountedQty    decimal.Decimal `json:"countedQty"`
	Variance      decimal.Decimal `json:"variance"`
	Unit          string          `json:"unit"`
	MaterialCode  string          `json:"materialCode,omitempty"`
	WarehouseCode string          `json:"warehouseCode,omitempty"`
}

// CreateStockTakeRequest envío de un sayım completo. Date nula = momento de aceptación.
type CreateStockTakeRequest struct {
	Date       *Date                  `json:"date"`
	OperatorID string                 `json:"operatorId"`
	Lines      []StockTakeLineRequest `json:"lines"`
}

// StockTakeCreatedResponse respuesta de un sayım aceptado.
type StockTakeCreatedResponse struct {
	Message        string          `json:"message"`
	StockTakeID    int64           `json:"stockTakeId"`
	DocumentNumber string          `json:"documentNumber"`
	Date           time.Time       `json:"date"`
	LineCount      int             `json:"lineCount"`
	TotalVariance  decimal.Decimal `json:"totalVariance"`
}

// StockTakeLineResponse línea almacenada.
type StockTakeLineResponse struct {
	ID            int64           `json:"id"`
	StockTakeID   int64           `json:"stockTakeId"`
	ProductID     int64           `json:"productId"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	OnHand        decimal.Decimal `json:"onHand"`
	CountedQty    decimal.Decimal `json:"countedQty"`
	Variance      decimal.Decimal `json:"variance"`
	Unit          string          `json:"unit"`
	MaterialCode  string          `json:"materialCode,omitempty"`
	WarehouseCode string          `json:"warehouseCode,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// StockTakeResponse sayım almacenado con sus líneas.
type StockTakeResponse struct {
	ID             int64                   `json:"id"`
	DocumentNumber string                  `json:"documentNumber"`
	Date           time.Time               `json:"date"`
	OperatorID     string                  `json:"operatorId"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
	TotalVariance  decimal.Decimal         `json:"totalVariance"`
	Lines          []StockTakeLineResponse `json:"lines"`
}

// StockTakeListResponse listado de sayımlar.
type StockTakeListResponse struct {
	Items []StockTakeResponse `json:"items"`
	Count int                 `json:"count"`
}
