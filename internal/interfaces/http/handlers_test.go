package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/application/product"
	"github.com/jhoicas/apex-sayim/internal/application/stocktake"
	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/domain/repository"
	domainst "github.com/jhoicas/apex-sayim/internal/domain/stocktake"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/apex-sayim/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const widgetBody = `{"date":"2024-03-01","operatorId":"U1","lines":[{"id":0,"productId":0,"code":"A1","name":"Widget","barcode":"1234567890123","onHand":50,"countedQty":48,"variance":-2,"unit":"pcs"}]}`

// brokenLedger acepta la reconciliación pero falla al escribir.
type brokenLedger struct{ repository.StockTakeRepository }

func (brokenLedger) Append(context.Context, *entity.StockTake) error { return errors.New("disk full") }
func (brokenLedger) MaxIDs(context.Context) (int64, int64, error)    { return 0, 0, nil }

func buildApp(t *testing.T, ledger repository.StockTakeRepository, jwtSecret string) *fiber.App {
	t.Helper()
	stUC := stocktake.NewUseCase(ledger, domainst.NewSequencer(ledger), domainst.DefaultPolicy(), zerolog.Nop())
	prodUC := product.NewUseCase(memory.DemoCatalog(), true, zerolog.Nop())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{StockTakeUC: stUC, ProductUC: prodUC, JWTSecret: jwtSecret})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body, auth string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decodeError(t *testing.T, b []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(b, &e), string(b))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sayim/kaydet
// ──────────────────────────────────────────────────────────────────────────────

func TestKaydet_EscenarioCompleto(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")

	status, b := do(t, app, http.MethodPost, "/api/sayim/kaydet", widgetBody, "")
	require.Equal(t, http.StatusOK, status, string(b))

	var created dto.StockTakeCreatedResponse
	require.NoError(t, json.Unmarshal(b, &created))
	assert.Equal(t, int64(1), created.StockTakeID)
	assert.True(t, strings.HasPrefix(created.DocumentNumber, "SYM"))
	assert.Len(t, created.DocumentNumber, 20)
	assert.Equal(t, 1, created.LineCount)
	assert.True(t, created.TotalVariance.Equal(decimal.NewFromInt(-2)))

	status, b = do(t, app, http.MethodGet, "/api/sayim/liste?baslangicTarihi=2024-03-01&bitisTarihi=2024-03-01", "", "")
	require.Equal(t, http.StatusOK, status, string(b))
	var list dto.StockTakeListResponse
	require.NoError(t, json.Unmarshal(b, &list))
	require.Equal(t, 1, list.Count)
	require.Len(t, list.Items[0].Lines, 1)
	assert.Equal(t, int64(1), list.Items[0].Lines[0].ProductID)
	assert.Equal(t, entity.StockTakeStatusCompleted, list.Items[0].Status)
	assert.Equal(t, created.DocumentNumber, list.Items[0].DocumentNumber)

	status, b = do(t, app, http.MethodGet, "/api/sayim/liste?baslangicTarihi=2024-03-02", "", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(b, &list))
	assert.Zero(t, list.Count)
}

func TestKaydet_Rechazos(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		code   string
		reason string
		line   int
	}{
		{"cuerpo vacío", "", apphttp.CodeNullRequest, "", 0},
		{"null", "null", apphttp.CodeNullRequest, "", 0},
		{"json roto", `{"operatorId":`, apphttp.CodeJSONError, "", 0},
		{"fecha inválida", `{"date":"01/03/2024","operatorId":"U1","lines":[]}`, apphttp.CodeJSONError, "", 0},
		{"sin líneas", `{"date":"2024-03-01","operatorId":"U1","lines":[]}`, apphttp.CodeEmptyList, string(domainst.ReasonEmptyLineSet), 0},
		{"sin operador", strings.Replace(widgetBody, `"U1"`, `"  "`, 1), apphttp.CodeInvalidData, string(domainst.ReasonMissingOperator), 0},
		{"barcode inválido", strings.Replace(widgetBody, "1234567890123", "12AB", 1), apphttp.CodeInvalidData, string(domainst.ReasonInvalidBarcode), 1},
		{"conteo negativo", strings.Replace(widgetBody, `"countedQty":48`, `"countedQty":-1`, 1), apphttp.CodeInvalidData, string(domainst.ReasonNegativeCountedQuantity), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := memory.NewStockTakeLedger()
			app := buildApp(t, ledger, "")
			status, b := do(t, app, http.MethodPost, "/api/sayim/kaydet", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, status, string(b))
			e := decodeError(t, b)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.reason, e.Reason)
			assert.Equal(t, tt.line, e.Line)
			assert.Zero(t, ledger.Len(), "un rechazo no escribe nada")
		})
	}
}

func TestKaydet_FalloDeAlmacenamiento(t *testing.T) {
	app := buildApp(t, brokenLedger{}, "")
	status, b := do(t, app, http.MethodPost, "/api/sayim/kaydet", widgetBody, "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apphttp.CodeSaveFailed, decodeError(t, b).Code)
}

func TestKaydet_ConAuth_OperadorDelToken(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), testJWTSecret)

	status, _ := do(t, app, http.MethodPost, "/api/sayim/kaydet", widgetBody, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/api/sayim/kaydet", widgetBody, bearer(t, apphttp.RoleReadOnly))
	assert.Equal(t, http.StatusForbidden, status)

	body := strings.Replace(widgetBody, `"U1"`, `""`, 1)
	status, b := do(t, app, http.MethodPost, "/api/sayim/kaydet", body, bearer(t, apphttp.RoleCounter))
	require.Equal(t, http.StatusOK, status, string(b))

	status, b = do(t, app, http.MethodGet, "/api/sayim/son?adet=1", "", bearer(t, apphttp.RoleReadOnly))
	require.Equal(t, http.StatusOK, status)
	var list dto.StockTakeListResponse
	require.NoError(t, json.Unmarshal(b, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, testUserID, list.Items[0].OperatorID)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sayim/liste, /api/sayim/son
// ──────────────────────────────────────────────────────────────────────────────

func TestListe_FechaInvalida(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")
	status, b := do(t, app, http.MethodGet, "/api/sayim/liste?baslangicTarihi=ayer", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidDate, decodeError(t, b).Code)
}

func TestSon_Limites(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")
	for _, q := range []string{"adet=0", "adet=101", "adet=x"} {
		status, b := do(t, app, http.MethodGet, "/api/sayim/son?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, apphttp.CodeInvalidLimit, decodeError(t, b).Code, q)
	}
	status, _ := do(t, app, http.MethodGet, "/api/sayim/son", "", "")
	assert.Equal(t, http.StatusOK, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/urun/...
// ──────────────────────────────────────────────────────────────────────────────

func TestUrunAra(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")

	status, b := do(t, app, http.MethodGet, "/api/urun/ara/1234567890123", "", "")
	require.Equal(t, http.StatusOK, status, string(b))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(b, &p))
	assert.Equal(t, "TEST001", p.Code)

	status, b = do(t, app, http.MethodGet, "/api/urun/ara/9999999999999", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeProductNotFound, decodeError(t, b).Code)

	status, b = do(t, app, http.MethodGet, "/api/urun/ara/123", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, b)
	assert.Equal(t, apphttp.CodeInvalidParameter, e.Code)
	assert.Equal(t, string(domainst.ReasonInvalidBarcode), e.Reason)

	status, b = do(t, app, http.MethodGet, "/api/urun/ara/1%27%3B%20DROP", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(domainst.ReasonInjectionRisk), decodeError(t, b).Reason)
}

func TestUrunListe(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")

	status, b := do(t, app, http.MethodGet, "/api/urun/liste", "", "")
	require.Equal(t, http.StatusOK, status)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(b, &list))
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, product.DefaultListLimit, list.Limit)

	for _, q := range []string{"limit=0", "limit=10001", "limit=abc"} {
		status, b := do(t, app, http.MethodGet, "/api/urun/liste?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, apphttp.CodeInvalidLimit, decodeError(t, b).Code, q)
	}
}

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := buildApp(t, memory.NewStockTakeLedger(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/urun/liste", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/urun/liste", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}
