package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/apex-sayim/docs"
	"github.com/jhoicas/apex-sayim/internal/application/product"
	"github.com/jhoicas/apex-sayim/internal/application/stocktake"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
	domainst "github.com/jhoicas/apex-sayim/internal/domain/stocktake"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/cache"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/erp"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/memory"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/apex-sayim/internal/interfaces/http"
	"github.com/jhoicas/apex-sayim/pkg/config"
	"github.com/jhoicas/apex-sayim/pkg/logger"
)

// @title        Apex Sayım API
// @version      1.0
// @description  Registro de conteos físicos de inventario (sayım) y búsqueda de productos por barcode.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ledger", cfg.StockTake.LedgerDriver).
		Str("catalog", cfg.StockTake.CatalogSource).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	var ledger repository.StockTakeRepository
	switch cfg.StockTake.LedgerDriver {
	case "postgres":
		ledger = postgres.NewStockTakeRepository(pool, postgres.NewTxRunner(pool))
	default:
		log.Warn().Msg("libro de sayım en memoria: los registros se pierden al reiniciar")
		ledger = memory.NewStockTakeLedger()
	}

	var catalog repository.ProductCatalog
	switch cfg.StockTake.CatalogSource {
	case "postgres":
		catalog = postgres.NewProductRepository(pool)
	case "erp":
		catalog = erp.NewClient(erp.Config{
			BaseURL:   cfg.ERP.BaseURL,
			Token:     cfg.ERP.Token,
			Timeout:   cfg.ERP.Timeout,
			RateLimit: cfg.ERP.RateLimit,
		}, log.Component("erp"))
	default:
		catalog = memory.DemoCatalog()
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no responde; la caché se usará cuando esté disponible")
		}
		catalog = cache.NewCachedCatalog(catalog, rdb, cfg.Redis.TTL, log.Component("cache"))
	}

	policy := domainst.Policy{
		ProductIDFallback: cfg.StockTake.ProductIDFallback,
		RecomputeVariance: cfg.StockTake.RecomputeVariance,
		BarcodeDenylist:   cfg.StockTake.BarcodeDenylist,
	}
	sequencer := domainst.NewSequencer(ledger)
	stockTakeUC := stocktake.NewUseCase(ledger, sequencer, policy, log.Component("stocktake"))
	productUC := product.NewUseCase(catalog, policy.BarcodeDenylist, log.Component("product"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Apex Sayım API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockTakeUC: stockTakeUC,
		ProductUC:   productUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
