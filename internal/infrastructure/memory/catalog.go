package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

var _ repository.ProductCatalog = (*Catalog)(nil)

// Catalog catálogo de productos en memoria.
type Catalog struct {
	mu       sync.RWMutex
	products []*entity.Product
}

// NewCatalog crea un catálogo con los productos dados (se copian).
func NewCatalog(products ...*entity.Product) *Catalog {
	c := &Catalog{}
	for _, p := range products {
		c.Add(p)
	}
	return c
}

// DemoCatalog catálogo de demostración para desarrollo sin ERP.
func DemoCatalog() *Catalog {
	adet := "Adet"
	return NewCatalog(
		&entity.Product{ID: 1, Code: "TEST001", Name: "Test Ürün 1", Barcode: "1234567890123", OnHand: decimal.NewFromInt(50), Unit: adet, Price: decimal.RequireFromString("12.50")},
		&entity.Product{ID: 2, Code: "TEST002", Name: "Test Ürün 2", Barcode: "1234567890124", OnHand: decimal.NewFromInt(25), Unit: adet, Price: decimal.RequireFromString("7.90")},
		&entity.Product{ID: 3, Code: "TEST003", Name: "Test Ürün 3", Barcode: "1234567890125", Barcode2: "86900001", OnHand: decimal.NewFromInt(100), Unit: adet, Price: decimal.RequireFromString("3.25")},
	)
}

// Add inserta o reemplaza un producto por ID.
func (c *Catalog) Add(p *entity.Product) {
	if p == nil {
		return
	}
	cp := *p
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.products {
		if existing.ID == cp.ID {
			c.products[i] = &cp
			return
		}
	}
	c.products = append(c.products, &cp)
	sort.Slice(c.products, func(i, j int) bool { return c.products[i].ID < c.products[j].ID })
}

// FindByBarcode busca por barcode (principal o alternativos) o por código. (nil, nil) si no existe.
func (c *Catalog) FindByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	b := strings.TrimSpace(barcode)
	if b == "" {
		return nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.MatchesBarcode(b) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// List devuelve hasta limit productos ordenados por ID.
func (c *Catalog) List(_ context.Context, limit int) ([]*entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.products)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*entity.Product, 0, n)
	for _, p := range c.products[:n] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
