package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

var _ repository.StockTakeRepository = (*StockTakeRepo)(nil)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// StockTakeRepo libro de sayımlar sobre PostgreSQL. Los ids vienen del secuenciador.
type StockTakeRepo struct {
	q  Querier
	tx *TxRunner
}

// NewStockTakeRepository construye el adaptador. q para lecturas; tx para Append (cabecera + líneas atómicas).
func NewStockTakeRepository(q Querier, tx *TxRunner) *StockTakeRepo {
	return &StockTakeRepo{q: q, tx: tx}
}

// Append inserta cabecera y líneas en una sola transacción.
func (r *StockTakeRepo) Append(ctx context.Context, st *entity.StockTake) error {
	if st == nil {
		return fmt.Errorf("%w: sayım nulo", domain.ErrPrecondition)
	}
	err := r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO stock_takes (id, document_number, taken_at, taken_day, taken_offset, operator_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			st.ID, st.DocumentNumber, st.Date, repository.Day(st.Date), utcOffset(st.Date),
			st.OperatorID, st.Status, st.CreatedAt,
		)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, l := range st.Lines {
			batch.Queue(`
				INSERT INTO stock_take_lines (stock_take_id, line_no, id, product_id, product_code, product_name, barcode,
					on_hand, counted_qty, variance, unit, material_code, warehouse_code, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				st.ID, i, l.ID, l.ProductID, l.ProductCode, l.ProductName, l.Barcode,
				l.OnHand, l.CountedQty, l.Variance, l.Unit, l.MaterialCode, l.WarehouseCode, l.UpdatedAt,
			)
		}
		return sendBatch(ctx, q, batch)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sayım %d / %s", domain.ErrDuplicate, st.ID, st.DocumentNumber)
		}
		return storageErr("insert stock take", err)
	}
	return nil
}

// sendBatch ejecuta el batch si el Querier lo soporta (pool o tx); si no, sentencia a sentencia.
func sendBatch(ctx context.Context, q Querier, b *pgx.Batch) error {
	type batcher interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	}
	if bq, ok := q.(batcher); ok {
		return bq.SendBatch(ctx, b).Close()
	}
	for _, qq := range b.QueuedQueries {
		if _, err := q.Exec(ctx, qq.SQL, qq.Arguments...); err != nil {
			return err
		}
	}
	return nil
}

// utcOffset segundos al este de UTC con los que el cliente expresó la fecha.
func utcOffset(t time.Time) int {
	_, off := t.Zone()
	return off
}

// buildListQuery consulta de cabeceras por rango de días, fecha descendente.
// taken_day es el día civil en el huso del cliente, calculado al aceptar.
func buildListQuery(f repository.StockTakeFilter) (string, []any, error) {
	qb := psql.Select("id", "document_number", "taken_at", "taken_offset", "operator_id", "status", "created_at").
		From("stock_takes")
	if f.From != nil {
		qb = qb.Where("taken_day >= ?", repository.Day(*f.From))
	}
	if f.To != nil {
		qb = qb.Where("taken_day <= ?", repository.Day(*f.To))
	}
	return qb.OrderBy("taken_at DESC", "id DESC").ToSql()
}

// List devuelve los sayımlar del rango con sus líneas en el orden original.
func (r *StockTakeRepo) List(ctx context.Context, f repository.StockTakeFilter) ([]*entity.StockTake, error) {
	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list stock takes", err)
	}
	defer rows.Close()

	var out []*entity.StockTake
	byID := make(map[int64]*entity.StockTake)
	ids := make([]int64, 0)
	for rows.Next() {
		var (
			st     entity.StockTake
			offset int32
		)
		if err := rows.Scan(&st.ID, &st.DocumentNumber, &st.Date, &offset, &st.OperatorID, &st.Status, &st.CreatedAt); err != nil {
			return nil, storageErr("scan stock take", err)
		}
		st.Date = st.Date.In(time.FixedZone("", int(offset)))
		out = append(out, &st)
		byID[st.ID] = &st
		ids = append(ids, st.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list stock takes", err)
	}
	if len(ids) == 0 {
		return []*entity.StockTake{}, nil
	}

	lineQuery, lineArgs, err := psql.Select(
		"stock_take_id", "id", "product_id", "product_code", "product_name", "barcode",
		"on_hand", "counted_qty", "variance", "unit", "material_code", "warehouse_code", "updated_at",
	).From("stock_take_lines").
		Where(squirrel.Eq{"stock_take_id": ids}).
		OrderBy("stock_take_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}
	lrows, err := r.q.Query(ctx, lineQuery, lineArgs...)
	if err != nil {
		return nil, storageErr("list stock take lines", err)
	}
	defer lrows.Close()
	for lrows.Next() {
		var l entity.StockTakeLine
		if err := lrows.Scan(&l.StockTakeID, &l.ID, &l.ProductID, &l.ProductCode, &l.ProductName, &l.Barcode,
			&l.OnHand, &l.CountedQty, &l.Variance, &l.Unit, &l.MaterialCode, &l.WarehouseCode, &l.UpdatedAt); err != nil {
			return nil, storageErr("scan stock take line", err)
		}
		if st, ok := byID[l.StockTakeID]; ok {
			st.Lines = append(st.Lines, l)
		}
	}
	if err := lrows.Err(); err != nil {
		return nil, storageErr("list stock take lines", err)
	}
	return out, nil
}

// MaxIDs mayores ids almacenados (0 en tablas vacías).
func (r *StockTakeRepo) MaxIDs(ctx context.Context) (int64, int64, error) {
	var maxST, maxLine int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE((SELECT MAX(id) FROM stock_takes), 0),
		       COALESCE((SELECT MAX(id) FROM stock_take_lines), 0)`,
	).Scan(&maxST, &maxLine)
	if err != nil {
		return 0, 0, storageErr("max ids", err)
	}
	return maxST, maxLine, nil
}
