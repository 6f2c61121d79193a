package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apex-sayim/internal/application/product"
	"github.com/jhoicas/apex-sayim/internal/application/stocktake"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockTakeUC *stocktake.UseCase
	ProductUC   *product.UseCase
	// JWTSecret vacío = API abierta (red interna del almacén).
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authEnabled := deps.JWTSecret != ""

	api := app.Group("/api")
	if authEnabled {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	sayim := api.Group("/sayim")
	stockTakeHandler := NewStockTakeHandler(deps.StockTakeUC, authEnabled)
	if authEnabled {
		sayim.Post("/kaydet", RequireRole(RoleAdmin, RoleCounter), stockTakeHandler.Record)
	} else {
		sayim.Post("/kaydet", stockTakeHandler.Record)
	}
	sayim.Get("/liste", stockTakeHandler.List)
	sayim.Get("/son", stockTakeHandler.Recent)

	urun := api.Group("/urun")
	productHandler := NewProductHandler(deps.ProductUC)
	urun.Get("/ara/:barkod", productHandler.Lookup)
	urun.Get("/liste", productHandler.List)
}
