package stocktake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
	"github.com/jhoicas/apex-sayim/internal/domain/stocktake"
)

// MaxRecent tope de Recent.
const MaxRecent = 100

// Allocator asigna identificadores a un sayım aceptado (lo implementa stocktake.Sequencer).
type Allocator interface {
	Allocate(ctx context.Context, lineIDs []int64, now time.Time) (stocktake.Allocation, error)
}

// UseCase acepta, identifica y registra sayımlar; también los consulta.
type UseCase struct {
	ledger    repository.StockTakeRepository
	allocator Allocator
	policy    stocktake.Policy
	now       func() time.Time
	log       zerolog.Logger
}

// Option ajusta el caso de uso.
type Option func(*UseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	ledger repository.StockTakeRepository,
	allocator Allocator,
	policy stocktake.Policy,
	log zerolog.Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		ledger:    ledger,
		allocator: allocator,
		policy:    policy,
		now:       time.Now,
		log:       log.With().Str("component", "stocktake").Logger(),
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Record valida el envío, asigna ids y número de documento bajo exclusión mutua y lo añade al libro.
// Errores: *stocktake.ValidationError, domain.ErrPrecondition o domain.ErrStorage (envuelto).
func (uc *UseCase) Record(ctx context.Context, in *dto.CreateStockTakeRequest) (*dto.StockTakeCreatedResponse, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: solicitud nula", domain.ErrPrecondition)
	}
	if uc.ledger == nil || uc.allocator == nil {
		return nil, fmt.Errorf("%w: caso de uso sin dependencias", domain.ErrPrecondition)
	}

	candidate := toCandidate(in)
	stocktake.Normalize(candidate)
	uc.policy.Apply(candidate)

	if err := stocktake.Validate(candidate); err != nil {
		var ve *stocktake.ValidationError
		if errors.As(err, &ve) {
			uc.log.Warn().Str("operator", candidate.OperatorID).Str("reason", string(ve.Reason)).
				Int("line", ve.Line).Msg("sayım rechazado")
		}
		return nil, err
	}

	now := uc.now()
	if candidate.Date.IsZero() {
		candidate.Date = now
	}

	lineIDs := make([]int64, len(candidate.Lines))
	for i, l := range candidate.Lines {
		lineIDs[i] = l.ID
	}
	alloc, err := uc.allocator.Allocate(ctx, lineIDs, now)
	if err != nil {
		uc.log.Error().Err(err).Msg("asignación de identificadores fallida")
		return nil, err
	}

	candidate.ID = alloc.StockTakeID
	candidate.DocumentNumber = alloc.DocumentNumber
	candidate.Status = entity.StockTakeStatusCompleted
	candidate.CreatedAt = now
	for i := range candidate.Lines {
		candidate.Lines[i].ID = alloc.LineIDs[i]
		candidate.Lines[i].StockTakeID = alloc.StockTakeID
		candidate.Lines[i].UpdatedAt = now
	}

	if err := uc.ledger.Append(ctx, candidate); err != nil {
		uc.log.Error().Err(err).Int64("stock_take_id", candidate.ID).Str("document", candidate.DocumentNumber).
			Msg("no se pudo registrar el sayım")
		if errors.Is(err, domain.ErrStorage) || errors.Is(err, domain.ErrPrecondition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	total := candidate.TotalVariance()
	uc.log.Info().Int64("stock_take_id", candidate.ID).Str("document", candidate.DocumentNumber).
		Str("operator", candidate.OperatorID).Int("lines", len(candidate.Lines)).
		Str("total_variance", total.String()).Msg("sayım registrado")

	return &dto.StockTakeCreatedResponse{
		Message:        fmt.Sprintf("Sayım başarıyla kaydedildi. %d ürün, toplam fark: %s", len(candidate.Lines), total.String()),
		StockTakeID:    candidate.ID,
		DocumentNumber: candidate.DocumentNumber,
		Date:           candidate.Date,
		LineCount:      len(candidate.Lines),
		TotalVariance:  total,
	}, nil
}

// List devuelve los sayımlar con fecha de negocio en [from, to] (por día; nil = sin límite).
func (uc *UseCase) List(ctx context.Context, from, to *time.Time) (*dto.StockTakeListResponse, error) {
	items, err := uc.ledger.List(ctx, repository.StockTakeFilter{From: from, To: to})
	if err != nil {
		uc.log.Error().Err(err).Msg("listado de sayımlar fallido")
		return nil, err
	}
	return toListResponse(items), nil
}

// Recent devuelve los n sayımlar más recientes (1..MaxRecent).
func (uc *UseCase) Recent(ctx context.Context, n int) (*dto.StockTakeListResponse, error) {
	if err := stocktake.ValidateLimit(n, MaxRecent); err != nil {
		return nil, err
	}
	items, err := uc.ledger.List(ctx, repository.StockTakeFilter{})
	if err != nil {
		uc.log.Error().Err(err).Msg("listado de sayımlar recientes fallido")
		return nil, err
	}
	if len(items) > n {
		items = items[:n]
	}
	return toListResponse(items), nil
}

func toCandidate(in *dto.CreateStockTakeRequest) *entity.StockTake {
	st := &entity.StockTake{OperatorID: in.OperatorID}
	if in.Date != nil {
		st.Date = in.Date.Time
	}
	if len(in.Lines) > 0 {
		st.Lines = make([]entity.StockTakeLine, len(in.Lines))
	}
	for i, l := range in.Lines {
		st.Lines[i] = entity.StockTakeLine{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ProductCode:   l.Code,
			ProductName:   l.Name,
			Barcode:       l.Barcode,
			OnHand:        l.OnHand,
			CountedQty:    l.CountedQty,
			Variance:      l.Variance,
			Unit:          l.Unit,
			MaterialCode:  l.MaterialCode,
			WarehouseCode: l.WarehouseCode,
		}
	}
	return st
}

func toListResponse(items []*entity.StockTake) *dto.StockTakeListResponse {
	out := &dto.StockTakeListResponse{Items: make([]dto.StockTakeResponse, 0, len(items)), Count: len(items)}
	for _, st := range items {
		out.Items = append(out.Items, toResponse(st))
	}
	return out
}

func toResponse(st *entity.StockTake) dto.StockTakeResponse {
	r := dto.StockTakeResponse{
		ID:             st.ID,
		DocumentNumber: st.DocumentNumber,
		Date:           st.Date,
		OperatorID:     st.OperatorID,
		Status:         st.Status,
		CreatedAt:      st.CreatedAt,
		TotalVariance:  st.TotalVariance(),
		Lines:          make([]dto.StockTakeLineResponse, 0, len(st.Lines)),
	}
	for _, l := range st.Lines {
		r.Lines = append(r.Lines, dto.StockTakeLineResponse{
			ID:            l.ID,
			StockTakeID:   l.StockTakeID,
			ProductID:     l.ProductID,
			Code:          l.ProductCode,
			Name:          l.ProductName,
			Barcode:       l.Barcode,
			OnHand:        l.OnHand,
			CountedQty:    l.CountedQty,
			Variance:      l.Variance,
			Unit:          l.Unit,
			MaterialCode:  l.MaterialCode,
			WarehouseCode: l.WarehouseCode,
			UpdatedAt:     l.UpdatedAt,
		})
	}
	return r
}
