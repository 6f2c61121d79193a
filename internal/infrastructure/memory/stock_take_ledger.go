// Package memory implementa los puertos de dominio en memoria del proceso
// (desarrollo, tests y despliegues de un solo nodo sin base de datos).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

var _ repository.StockTakeRepository = (*StockTakeLedger)(nil)

// StockTakeLedger libro append-only de sayımlar. Las lecturas son concurrentes entre sí
// y exclusivas frente a las escrituras.
type StockTakeLedger struct {
	mu    sync.RWMutex
	byID  map[int64]*entity.StockTake
	order []int64
}

// NewStockTakeLedger crea un libro vacío.
func NewStockTakeLedger() *StockTakeLedger {
	return &StockTakeLedger{byID: make(map[int64]*entity.StockTake)}
}

// Append guarda una copia del sayım. Un id repetido es un error: nunca se sobrescribe.
func (l *StockTakeLedger) Append(ctx context.Context, st *entity.StockTake) error {
	if st == nil {
		return fmt.Errorf("%w: sayım nulo", domain.ErrPrecondition)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[st.ID]; ok {
		return fmt.Errorf("%w: sayım %d", domain.ErrDuplicate, st.ID)
	}
	l.byID[st.ID] = st.Clone()
	l.order = append(l.order, st.ID)
	return nil
}

// List devuelve copias de los sayımlar dentro del rango, fecha descendente (empate: id descendente).
func (l *StockTakeLedger) List(ctx context.Context, filter repository.StockTakeFilter) ([]*entity.StockTake, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	l.mu.RLock()
	out := make([]*entity.StockTake, 0, len(l.order))
	for _, id := range l.order {
		st := l.byID[id]
		if filter.Contains(st.Date) {
			out = append(out, st.Clone())
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// MaxIDs recorre el libro para obtener los mayores ids de sayım y de línea.
func (l *StockTakeLedger) MaxIDs(ctx context.Context) (int64, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	var maxST, maxLine int64
	for id, st := range l.byID {
		if id > maxST {
			maxST = id
		}
		for _, line := range st.Lines {
			if line.ID > maxLine {
				maxLine = line.ID
			}
		}
	}
	return maxST, maxLine, nil
}

// Len número de sayımlar almacenados.
func (l *StockTakeLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}
