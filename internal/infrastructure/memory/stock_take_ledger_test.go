package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/memory"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func sample(id int64, date time.Time, lineIDs ...int64) *entity.StockTake {
	st := &entity.StockTake{
		ID:             id,
		DocumentNumber: "SYM" + date.Format("20060102150405") + "000",
		Date:           date,
		OperatorID:     "u1",
		Status:         entity.StockTakeStatusCompleted,
	}
	for _, l := range lineIDs {
		st.Lines = append(st.Lines, entity.StockTakeLine{
			ID: l, StockTakeID: id, ProductID: 1, ProductName: "Test Ürün 1", Barcode: "1234567890123",
			OnHand: decimal.NewFromInt(10), CountedQty: decimal.NewFromInt(8), Variance: decimal.NewFromInt(-2),
		})
	}
	return st
}

func TestStockTakeLedger_AppendYList(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()

	in := sample(1, day(2024, 3, 1, 10), 1, 2)
	require.NoError(t, l.Append(ctx, in))

	out, err := l.List(ctx, repository.StockTakeFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in, out[0], "round-trip sin pérdida")
	assert.NotSame(t, in, out[0])
}

func TestStockTakeLedger_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	in := sample(1, day(2024, 3, 1, 10), 1)
	require.NoError(t, l.Append(ctx, in))

	in.Lines[0].ProductName = "mutado"
	out, _ := l.List(ctx, repository.StockTakeFilter{})
	out[0].Lines[0].Barcode = "otro"

	again, _ := l.List(ctx, repository.StockTakeFilter{})
	assert.Equal(t, "Test Ürün 1", again[0].Lines[0].ProductName)
	assert.Equal(t, "1234567890123", again[0].Lines[0].Barcode)
}

func TestStockTakeLedger_IDDuplicado(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	require.NoError(t, l.Append(ctx, sample(1, day(2024, 3, 1, 10))))
	err := l.Append(ctx, sample(1, day(2024, 3, 2, 10)))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, l.Len())
}

func TestStockTakeLedger_FiltroPorDia(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	require.NoError(t, l.Append(ctx, sample(1, day(2024, 2, 28, 9))))
	require.NoError(t, l.Append(ctx, sample(2, day(2024, 3, 1, 23))))
	require.NoError(t, l.Append(ctx, sample(3, day(2024, 3, 1, 8))))
	require.NoError(t, l.Append(ctx, sample(4, day(2024, 3, 5, 12))))

	ids := func(f repository.StockTakeFilter) []int64 {
		out, err := l.List(ctx, f)
		require.NoError(t, err)
		res := make([]int64, 0, len(out))
		for _, st := range out {
			res = append(res, st.ID)
		}
		return res
	}

	// los límites ignoran la hora
	assert.Equal(t, []int64{2, 3}, ids(repository.StockTakeFilter{From: ptr(day(2024, 3, 1, 20)), To: ptr(day(2024, 3, 1, 0))}))
	assert.Equal(t, []int64{4, 2, 3}, ids(repository.StockTakeFilter{From: ptr(day(2024, 3, 1, 0))}))
	assert.Equal(t, []int64{2, 3, 1}, ids(repository.StockTakeFilter{To: ptr(day(2024, 3, 4, 0))}))
	assert.Equal(t, []int64{4, 2, 3, 1}, ids(repository.StockTakeFilter{}))
	assert.Empty(t, ids(repository.StockTakeFilter{From: ptr(day(2024, 3, 2, 0)), To: ptr(day(2024, 3, 4, 0))}))
	assert.Empty(t, ids(repository.StockTakeFilter{From: ptr(day(2024, 3, 5, 0)), To: ptr(day(2024, 3, 1, 0))}), "rango invertido")
}

func TestStockTakeLedger_EmpateOrdenaPorID(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	same := day(2024, 3, 1, 10)
	require.NoError(t, l.Append(ctx, sample(1, same)))
	require.NoError(t, l.Append(ctx, sample(2, same)))

	out, err := l.List(ctx, repository.StockTakeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, int64(1), out[1].ID)
}

func TestStockTakeLedger_ListIdempotente(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	require.NoError(t, l.Append(ctx, sample(1, day(2024, 3, 1, 10), 1)))
	require.NoError(t, l.Append(ctx, sample(2, day(2024, 3, 2, 10), 2)))

	f := repository.StockTakeFilter{From: ptr(day(2024, 3, 1, 0))}
	a, err := l.List(ctx, f)
	require.NoError(t, err)
	b, err := l.List(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStockTakeLedger_MaxIDs(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()

	st, line, err := l.MaxIDs(ctx)
	require.NoError(t, err)
	assert.Zero(t, st)
	assert.Zero(t, line)

	require.NoError(t, l.Append(ctx, sample(4, day(2024, 3, 1, 10), 9, 3)))
	require.NoError(t, l.Append(ctx, sample(2, day(2024, 3, 2, 10), 5)))
	st, line, err = l.MaxIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st)
	assert.Equal(t, int64(9), line)
}

func TestStockTakeLedger_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := memory.NewStockTakeLedger()
	assert.ErrorIs(t, l.Append(ctx, sample(1, day(2024, 3, 1, 10))), domain.ErrStorage)
	_, err := l.List(ctx, repository.StockTakeFilter{})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestStockTakeLedger_Concurrente(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, l.Append(ctx, sample(id, day(2024, 3, 1, 10), id)))
		}(int64(i))
		go func() {
			defer wg.Done()
			_, err := l.List(ctx, repository.StockTakeFilter{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, l.Len())
}

func TestStockTakeLedger_FiltroPorDia_UsaHusoDelCliente(t *testing.T) {
	ctx := context.Background()
	l := memory.NewStockTakeLedger()
	trt := time.FixedZone("", 3*3600)
	// 01:30 en Turquía el 1 de marzo = 22:30 UTC del 29 de febrero
	require.NoError(t, l.Append(ctx, sample(1, time.Date(2024, 3, 1, 1, 30, 0, 0, trt))))

	out, err := l.List(ctx, repository.StockTakeFilter{From: ptr(day(2024, 3, 1, 0)), To: ptr(day(2024, 3, 1, 0))})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	out, err = l.List(ctx, repository.StockTakeFilter{From: ptr(day(2024, 2, 29, 0)), To: ptr(day(2024, 2, 29, 0))})
	require.NoError(t, err)
	assert.Empty(t, out)
}
