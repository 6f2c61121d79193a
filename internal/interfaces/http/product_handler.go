package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/application/product"
)

// ProductHandler búsqueda de productos por barcode.
type ProductHandler struct {
	uc *product.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *product.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Lookup godoc
// @Summary      Buscar producto por barcode
// @Tags         urun
// @Produce      json
// @Param        barkod  path  string  true  "Barcode (8-13 dígitos)"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/urun/ara/{barkod} [get]
func (h *ProductHandler) Lookup(c *fiber.Ctx) error {
	raw := c.Params("barkod")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	out, err := h.uc.LookupBarcode(c.UserContext(), raw)
	if err != nil {
		return writeQueryError(c, err, CodeInvalidParameter)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         urun
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos (1-10000, defecto 1000)"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/urun/liste [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := product.DefaultListLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidLimit, Message: "limit debe ser numérico"})
		}
		limit = v
	}
	out, err := h.uc.List(c.UserContext(), limit)
	if err != nil {
		return writeQueryError(c, err, CodeInvalidLimit)
	}
	return c.JSON(out)
}
