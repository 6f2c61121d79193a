package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

var _ repository.ProductCatalog = (*ProductRepo)(nil)

var productColumns = []string{"id", "code", "name", "barcode", "barcode2", "barcode3", "on_hand", "unit", "price"}

// ProductRepo catálogo de productos sobre PostgreSQL (réplica del maestro de artículos del ERP).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func buildFindByBarcodeQuery(barcode string) (string, []any, error) {
	return psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"barcode": barcode},
			squirrel.Eq{"barcode2": barcode},
			squirrel.Eq{"barcode3": barcode},
			squirrel.Eq{"code": barcode},
		}).
		OrderBy("id").
		Limit(1).
		ToSql()
}

// FindByBarcode busca un producto activo por barcode, barcodes alternativos o código. (nil, nil) si no existe.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	query, args, err := buildFindByBarcodeQuery(barcode)
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}
	var p entity.Product
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Code, &p.Name, &p.Barcode, &p.Barcode2, &p.Barcode3, &p.OnHand, &p.Unit, &p.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product by barcode", err)
	}
	return &p, nil
}

// List devuelve hasta limit productos activos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	qb := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"active": true}).OrderBy("id")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Barcode, &p.Barcode2, &p.Barcode3, &p.OnHand, &p.Unit, &p.Price); err != nil {
			return nil, storageErr("scan product", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list products", err)
	}
	return out, nil
}
