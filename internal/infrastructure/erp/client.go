// Package erp cliente REST del gateway del ERP Logo para resolver productos.
package erp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
)

// MaxPageSize máximo de registros por página que acepta el gateway.
const MaxPageSize = 1000

var _ repository.ProductCatalog = (*Client)(nil)

// Envelope sobre común del gateway.
type Envelope[T any] struct {
	Success   bool   `json:"basarili"`
	Message   string `json:"mesaj"`
	Data      T      `json:"veri"`
	Total     int    `json:"toplamKayit"`
	Page      int    `json:"sayfaNo"`
	PageSize  int    `json:"sayfaBoyutu"`
	ErrorCode string `json:"hataKodu"`
}

// Item artículo tal como lo devuelve el gateway.
type Item struct {
	LogicalRef   int64           `json:"logicalRef"`
	MaterialCode string          `json:"malzemeKodu"`
	MaterialName string          `json:"malzemeAdi"`
	Barcode      string          `json:"barkod"`
	Unit         string          `json:"birim"`
	UnitPrice    decimal.Decimal `json:"birimFiyat"`
	OnHand       decimal.Decimal `json:"mevcutStok"`
	Active       bool            `json:"aktif"`
	AltBarcodes  []string        `json:"alternatifBarkodlar"`
}

// Config parámetros del cliente.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64 // peticiones por segundo; 0 = sin límite
}

// Client catálogo respaldado por el gateway REST del ERP.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient construye el cliente.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Client{
		http:    rc,
		limiter: limiter,
		log:     log.With().Str("component", "erp").Logger(),
	}
}

// FindByBarcode GET /urunler/barkod/{barkod}. 404 o artículo inactivo = (nil, nil).
func (c *Client) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("erp rate limit: %w", err)
	}
	var env Envelope[*Item]
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetPathParam("barkod", barcode).
		Get("/urunler/barkod/{barkod}")
	if err != nil {
		return nil, fmt.Errorf("%w: erp: %v", domain.ErrStorage, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: erp respondió %d", domain.ErrStorage, resp.StatusCode())
	}
	if !env.Success {
		if env.ErrorCode == "URUN_BULUNAMADI" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: erp: %s (%s)", domain.ErrStorage, env.Message, env.ErrorCode)
	}
	if env.Data == nil || !env.Data.Active {
		return nil, nil
	}
	p := env.Data.toProduct()
	c.log.Debug().Str("barcode", barcode).Str("code", p.Code).Dur("latency", resp.Time()).Msg("producto resuelto")
	return p, nil
}

// List recorre páginas de GET /urunler hasta reunir limit artículos activos o agotar el catálogo.
func (c *Client) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	pageSize := MaxPageSize
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}
	for page := 1; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("erp rate limit: %w", err)
		}
		var env Envelope[[]Item]
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&env).
			SetQueryParam("sayfa", fmt.Sprint(page)).
			SetQueryParam("kayitSayisi", fmt.Sprint(pageSize)).
			Get("/urunler")
		if err != nil {
			return nil, fmt.Errorf("%w: erp: %v", domain.ErrStorage, err)
		}
		if resp.IsError() || !env.Success {
			return nil, fmt.Errorf("%w: erp respondió %d %s", domain.ErrStorage, resp.StatusCode(), env.ErrorCode)
		}
		for i := range env.Data {
			if !env.Data[i].Active {
				continue
			}
			out = append(out, env.Data[i].toProduct())
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
		if len(env.Data) < pageSize || (env.Total > 0 && page*pageSize >= env.Total) {
			return out, nil
		}
	}
}

func (it *Item) toProduct() *entity.Product {
	p := &entity.Product{
		ID:      it.LogicalRef,
		Code:    it.MaterialCode,
		Name:    it.MaterialName,
		Barcode: it.Barcode,
		OnHand:  it.OnHand,
		Unit:    it.Unit,
		Price:   it.UnitPrice,
	}
	if len(it.AltBarcodes) > 0 {
		p.Barcode2 = it.AltBarcodes[0]
	}
	if len(it.AltBarcodes) > 1 {
		p.Barcode3 = it.AltBarcodes[1]
	}
	return p
}
