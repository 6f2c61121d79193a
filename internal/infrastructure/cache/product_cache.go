// Package cache decora el catálogo de productos con una caché Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

const keyPrefix = "urun:barkod:"

// notFoundMarker se guarda para barcodes inexistentes; evita golpear al ERP en cada reintento del terminal.
const notFoundMarker = "-"

var _ repository.ProductCatalog = (*CachedCatalog)(nil)

// CachedCatalog cachea FindByBarcode (hits y misses) con TTL. List va siempre a la fuente.
// Un fallo de Redis se registra y la consulta cae a la fuente.
type CachedCatalog struct {
	source repository.ProductCatalog
	client redis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedCatalog construye el decorador.
func NewCachedCatalog(source repository.ProductCatalog, client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "product_cache").Logger(),
	}
}

// Key clave Redis de un barcode.
func Key(barcode string) string { return keyPrefix + barcode }

// FindByBarcode consulta Redis y, en miss, la fuente.
func (c *CachedCatalog) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	key := Key(barcode)
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			c.log.Debug().Str("key", key).Msg("cache hit (no existe)")
			return nil, nil
		}
		var p entity.Product
		uerr := json.Unmarshal(data, &p)
		if uerr == nil {
			c.log.Debug().Str("key", key).Msg("cache hit")
			return &p, nil
		}
		c.log.Warn().Err(uerr).Str("key", key).Msg("valor de caché corrupto")
	case errors.Is(err, redis.Nil):
		c.log.Debug().Str("key", key).Msg("cache miss")
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, se consulta la fuente")
	}

	p, err := c.source.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// List delega en la fuente.
func (c *CachedCatalog) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	return c.source.List(ctx, limit)
}

// Invalidate borra la entrada de un barcode.
func (c *CachedCatalog) Invalidate(ctx context.Context, barcode string) error {
	if err := c.client.Del(ctx, Key(barcode)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *CachedCatalog) store(ctx context.Context, key string, p *entity.Product) {
	var value []byte
	if p == nil {
		value = []byte(notFoundMarker)
	} else {
		data, err := json.Marshal(p)
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar el producto")
			return
		}
		value = data
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
	}
}
