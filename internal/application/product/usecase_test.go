package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apex-sayim/internal/application/product"
	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/stocktake"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/memory"
)

type catalogMock struct{ mock.Mock }

func (m *catalogMock) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	args := m.Called(ctx, barcode)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *catalogMock) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func TestLookupBarcode_Encontrado(t *testing.T) {
	uc := product.NewUseCase(memory.DemoCatalog(), true, zerolog.Nop())
	p, err := uc.LookupBarcode(context.Background(), " 1234567890124 ")
	require.NoError(t, err)
	assert.Equal(t, "TEST002", p.Code)
	assert.Equal(t, "Test Ürün 2", p.Name)
}

func TestLookupBarcode_NoEncontrado(t *testing.T) {
	uc := product.NewUseCase(memory.DemoCatalog(), true, zerolog.Nop())
	_, err := uc.LookupBarcode(context.Background(), "9999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupBarcode_Rechazos(t *testing.T) {
	cat := new(catalogMock)
	uc := product.NewUseCase(cat, true, zerolog.Nop())

	tests := []struct {
		raw    string
		reason stocktake.Reason
	}{
		{"", stocktake.ReasonInvalidBarcode},
		{"   ", stocktake.ReasonInvalidBarcode},
		{"12345", stocktake.ReasonInvalidBarcode},
		{"123456789'--", stocktake.ReasonInjectionRisk},
		{"1 union 2", stocktake.ReasonInjectionRisk},
	}
	for _, tt := range tests {
		_, err := uc.LookupBarcode(context.Background(), tt.raw)
		var ve *stocktake.ValidationError
		require.ErrorAs(t, err, &ve, tt.raw)
		assert.Equal(t, tt.reason, ve.Reason, tt.raw)
	}
	cat.AssertNotCalled(t, "FindByBarcode", mock.Anything, mock.Anything)
}

func TestLookupBarcode_ErrorDeCatalogo(t *testing.T) {
	cat := new(catalogMock)
	boom := errors.New("erp caído")
	cat.On("FindByBarcode", mock.Anything, "12345678").Return(nil, boom)
	uc := product.NewUseCase(cat, true, zerolog.Nop())

	_, err := uc.LookupBarcode(context.Background(), "12345678")
	assert.ErrorIs(t, err, boom)
}

func TestList(t *testing.T) {
	uc := product.NewUseCase(memory.DemoCatalog(), true, zerolog.Nop())

	res, err := uc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, res.Limit)

	_, err = uc.List(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(context.Background(), stocktake.MaxProductListLimit+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
