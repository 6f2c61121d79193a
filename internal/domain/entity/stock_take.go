package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTakeStatusCompleted estado de todo sayım aceptado (valor de cable de los clientes móvil y escritorio).
const StockTakeStatusCompleted = "Tamamlandi"

// StockTake representa una sesión de conteo (sayım) con sus líneas.
// ID y DocumentNumber los asigna el secuenciador al aceptar; Date es la fecha de negocio del conteo.
type StockTake struct {
	ID             int64
	DocumentNumber string // "SYM" + yyyyMMddHHmmssfff (UTC)
	Date           time.Time
	OperatorID     string
	Status         string
	Lines          []StockTakeLine
	CreatedAt      time.Time
}

// StockTakeLine representa un producto contado dentro de un sayım.
type StockTakeLine struct {
	ID            int64
	StockTakeID   int64
	ProductID     int64
	ProductCode   string
	ProductName   string
	Barcode       string
	OnHand        decimal.Decimal // stock según sistema
	CountedQty    decimal.Decimal // cantidad contada
	Variance      decimal.Decimal // contada - sistema; negativo = faltante
	Unit          string
	MaterialCode  string // código de material en el ERP
	WarehouseCode string
	UpdatedAt     time.Time
}

// TotalVariance suma las diferencias de todas las líneas.
func (s *StockTake) TotalVariance() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Variance)
	}
	return total
}

// Clone devuelve una copia profunda (las líneas no se comparten con el original).
func (s *StockTake) Clone() *StockTake {
	if s == nil {
		return nil
	}
	out := *s
	if s.Lines != nil {
		out.Lines = make([]StockTakeLine, len(s.Lines))
		copy(out.Lines, s.Lines)
	}
	return &out
}
