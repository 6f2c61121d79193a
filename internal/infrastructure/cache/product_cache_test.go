package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/cache"
)

type countingCatalog struct {
	products map[string]*entity.Product
	finds    int
}

func (c *countingCatalog) FindByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	c.finds++
	return c.products[barcode], nil
}

func (c *countingCatalog) List(context.Context, int) ([]*entity.Product, error) {
	return []*entity.Product{{ID: 1}}, nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *countingCatalog, *cache.CachedCatalog) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &countingCatalog{products: map[string]*entity.Product{
		"1234567890123": {ID: 1, Code: "TEST001", Name: "Test Ürün 1", Barcode: "1234567890123", OnHand: decimal.RequireFromString("50.5")},
	}}
	return mr, src, cache.NewCachedCatalog(src, client, time.Minute, zerolog.Nop())
}

func TestCachedCatalog_HitDespuesDeMiss(t *testing.T) {
	ctx := context.Background()
	mr, src, c := setup(t)

	p, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, mr.Exists(cache.Key("1234567890123")))

	p2, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	require.NotNil(t, p2)
	assert.Equal(t, "Test Ürün 1", p2.Name)
	assert.True(t, p2.OnHand.Equal(decimal.RequireFromString("50.5")))
	assert.Equal(t, 1, src.finds, "el segundo acceso no llega a la fuente")
}

func TestCachedCatalog_CacheaInexistentes(t *testing.T) {
	ctx := context.Background()
	_, src, c := setup(t)

	for i := 0; i < 3; i++ {
		p, err := c.FindByBarcode(ctx, "9999999999999")
		require.NoError(t, err)
		assert.Nil(t, p)
	}
	assert.Equal(t, 1, src.finds)
}

func TestCachedCatalog_TTL(t *testing.T) {
	ctx := context.Background()
	mr, src, c := setup(t)

	_, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	assert.Equal(t, 2, src.finds)
}

func TestCachedCatalog_RedisCaido(t *testing.T) {
	ctx := context.Background()
	mr, src, c := setup(t)
	mr.Close()

	p, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err, "sin Redis se consulta la fuente")
	require.NotNil(t, p)
	assert.Equal(t, 1, src.finds)
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	ctx := context.Background()
	mr, _, c := setup(t)

	_, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "1234567890123"))
	assert.False(t, mr.Exists(cache.Key("1234567890123")))
}

func TestCachedCatalog_ListDelega(t *testing.T) {
	_, _, c := setup(t)
	items, err := c.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
