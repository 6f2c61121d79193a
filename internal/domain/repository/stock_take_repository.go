package repository

import (
	"context"
	"time"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
)

// StockTakeFilter rango de fechas de negocio; nil = sin límite por ese lado.
// Los límites se comparan por día (se ignora la hora), cada fecha en su propio huso.
type StockTakeFilter struct {
	From *time.Time
	To   *time.Time
}

// StockTakeRepository define el puerto del libro de sayımlar (append-only).
type StockTakeRepository interface {
	// Append inserta un sayım ya validado e identificado. Nunca modifica registros existentes.
	Append(ctx context.Context, st *entity.StockTake) error
	// List devuelve los sayımlar dentro del rango, ordenados por fecha de negocio descendente.
	List(ctx context.Context, filter StockTakeFilter) ([]*entity.StockTake, error)
	// MaxIDs devuelve los mayores identificadores de sayım y de línea almacenados (0 si no hay).
	MaxIDs(ctx context.Context) (stockTakeID, lineID int64, err error)
}

// Day día civil de t en el huso con el que fue expresada (el del terminal que contó).
// 2024-03-01T01:30:00+03:00 es el día 2024-03-01 aunque en UTC sea 2024-02-29.
// El resultado se devuelve a medianoche UTC para poder comparar días de husos distintos.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains indica si la fecha de negocio t cae dentro del rango (inclusive, por día).
func (f StockTakeFilter) Contains(t time.Time) bool {
	day := Day(t)
	if f.From != nil && day.Before(Day(*f.From)) {
		return false
	}
	if f.To != nil && day.After(Day(*f.To)) {
		return false
	}
	return true
}
