package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/application/stocktake"
)

// DefaultRecent cantidad por defecto de /son.
const DefaultRecent = 10

// StockTakeHandler maneja las peticiones HTTP de sayım.
type StockTakeHandler struct {
	uc          *stocktake.UseCase
	authEnabled bool
}

// NewStockTakeHandler construye el handler. Con authEnabled, un operatorId vacío se toma del token.
func NewStockTakeHandler(uc *stocktake.UseCase, authEnabled bool) *StockTakeHandler {
	return &StockTakeHandler{uc: uc, authEnabled: authEnabled}
}

// Record godoc
// @Summary      Registrar sayım
// @Description  Valida el conteo, asigna id y número de fiche (SYM...) y lo añade al libro.
// @Tags         sayim
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTakeRequest  true  "Sayım"
// @Success      200   {object}  dto.StockTakeCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sayim/kaydet [post]
func (h *StockTakeHandler) Record(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeNullRequest, Message: "Geçersiz istek verisi"})
	}
	var in dto.CreateStockTakeRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeJSONError, Message: "JSON format hatası"})
	}
	if h.authEnabled && strings.TrimSpace(in.OperatorID) == "" {
		in.OperatorID = GetUserID(c)
	}

	out, err := h.uc.Record(c.UserContext(), &in)
	if err != nil {
		return writeRecordError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// List godoc
// @Summary      Listar sayımlar por rango de fechas
// @Tags         sayim
// @Produce      json
// @Param        baslangicTarihi  query  string  false  "Desde (2006-01-02 o RFC3339), inclusive"
// @Param        bitisTarihi      query  string  false  "Hasta (2006-01-02 o RFC3339), inclusive"
// @Success      200  {object}  dto.StockTakeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sayim/liste [get]
func (h *StockTakeHandler) List(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "baslangicTarihi")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidDate, Message: err.Error()})
	}
	to, err := parseDateQuery(c, "bitisTarihi")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidDate, Message: err.Error()})
	}
	out, err := h.uc.List(c.UserContext(), from, to)
	if err != nil {
		return writeQueryError(c, err, CodeInvalidParameter)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Últimos sayımlar
// @Tags         sayim
// @Produce      json
// @Param        adet  query  int  false  "Cantidad (1-100, defecto 10)"
// @Success      200  {object}  dto.StockTakeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sayim/son [get]
func (h *StockTakeHandler) Recent(c *fiber.Ctx) error {
	n := DefaultRecent
	if raw := strings.TrimSpace(c.Query("adet")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidLimit, Message: "adet debe ser numérico"})
		}
		n = v
	}
	out, err := h.uc.Recent(c.UserContext(), n)
	if err != nil {
		return writeQueryError(c, err, CodeInvalidLimit)
	}
	return c.JSON(out)
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
