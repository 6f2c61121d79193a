package repository

import (
	"context"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
)

// ProductCatalog define el puerto de resolución de productos (catálogo del ERP).
type ProductCatalog interface {
	// FindByBarcode busca por barcode principal, alternativos o código. (nil, nil) si no existe.
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// List devuelve hasta limit productos activos ordenados por ID.
	List(ctx context.Context, limit int) ([]*entity.Product, error)
}
