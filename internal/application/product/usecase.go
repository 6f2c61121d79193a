package product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
	"github.com/jhoicas/apex-sayim/internal/domain/stocktake"
)

// DefaultListLimit límite de List cuando el cliente no lo indica.
const DefaultListLimit = 1000

// UseCase búsqueda de productos en el catálogo del ERP.
type UseCase struct {
	catalog  repository.ProductCatalog
	denylist bool
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. denylist activa el escaneo de inyección sobre el barcode.
func NewUseCase(catalog repository.ProductCatalog, denylist bool, log zerolog.Logger) *UseCase {
	return &UseCase{
		catalog:  catalog,
		denylist: denylist,
		log:      log.With().Str("component", "product").Logger(),
	}
}

// LookupBarcode resuelve un barcode escaneado. Errores: *stocktake.ValidationError,
// domain.ErrNotFound o el error del catálogo.
func (uc *UseCase) LookupBarcode(ctx context.Context, raw string) (*dto.ProductResponse, error) {
	barcode, err := stocktake.ValidateLookupBarcode(raw, uc.denylist)
	if err != nil {
		uc.log.Warn().Str("barcode", raw).Err(err).Msg("barcode rechazado")
		return nil, err
	}
	p, err := uc.catalog.FindByBarcode(ctx, barcode)
	if err != nil {
		uc.log.Error().Err(err).Str("barcode", barcode).Msg("búsqueda en catálogo fallida")
		return nil, err
	}
	if p == nil {
		uc.log.Info().Str("barcode", barcode).Msg("producto no encontrado")
		return nil, fmt.Errorf("%w: barkod %s", domain.ErrNotFound, barcode)
	}
	r := toProductResponse(p)
	return &r, nil
}

// List devuelve hasta limit productos (1..10000).
func (uc *UseCase) List(ctx context.Context, limit int) (*dto.ProductListResponse, error) {
	if err := stocktake.ValidateLimit(limit, stocktake.MaxProductListLimit); err != nil {
		return nil, err
	}
	items, err := uc.catalog.List(ctx, limit)
	if err != nil {
		uc.log.Error().Err(err).Int("limit", limit).Msg("listado de productos fallido")
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(items)), Count: len(items), Limit: limit}
	for _, p := range items {
		out.Items = append(out.Items, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Barcode:  p.Barcode,
		Barcode2: p.Barcode2,
		Barcode3: p.Barcode3,
		OnHand:   p.OnHand,
		Unit:     p.Unit,
		Price:    p.Price,
	}
}
