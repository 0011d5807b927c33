package http_test

import (
	"bytes"
	"encoding/json"
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

	"github.com/jhoicas/kitchen-ledger/internal/application/analytics"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/kitchen-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type server struct {
	t   *testing.T
	app *fiber.App
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memory.NewStore()
	rec := metrics.NewRecorder("kitchen_ledger")

	articleUC := usecase.NewArticleUseCase(store, store.Articles(), store.Catalog())
	deps := apphttp.RouterDeps{
		ServiceName:    "kitchen-ledger",
		ArticleUC:      articleUC,
		RecipeUC:       usecase.NewRecipeUseCase(store, store.Recipes(), store.Articles()),
		MenuUC:         usecase.NewMenuUseCase(store.Menus(), store.Recipes(), store.Articles(), store.Catalog()),
		CatalogUC:      usecase.NewCatalogUseCase(store.VATs(), store.Catalog()),
		DocumentUC:     ledger.NewDocumentUseCase(store, store.Documents(), store.Articles(), store.VATs(), store.Movements()),
		ApprovalUC:     ledger.NewApprovalUseCase(store, rec, zerolog.Nop()),
		MenuIssueUC:    ledger.NewMenuIssueUseCase(store, rec, zerolog.Nop()),
		Replenishment:  inventory.NewReplenishmentUseCase(store.Articles(), store.Analytics()),
		DashboardUC:    analytics.NewDashboardUseCase(store.Analytics(), store.Articles()),
		JWTSecret:      testJWTSecret,
		MetricsHandler: rec.Handler(),
		MetricsPath:    "/metrics",
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.Metrics(rec))
	apphttp.Router(app, deps)
	return &server{t: t, app: app}
}

// call envía body como JSON con un token del rol indicado (rol vacío = sin token)
// y decodifica la respuesta en out si no es nil.
func (s *server) call(method, path, role string, body interface{}, out interface{}) int {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(s.t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, out), "respuesta: %s", raw)
	}
	return resp.StatusCode
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture crea IVA y el artículo harina (kg); devuelve sus IDs.
func (s *server) fixture() (vatID, flourID string) {
	s.t.Helper()
	var vat dto.VATResponse
	require.Equal(s.t, http.StatusCreated, s.call(http.MethodPost, "/api/vats", apphttp.RoleAdmin,
		dto.CreateVATRequest{Percentage: 10, Name: "Reducida"}, &vat))
	var flour dto.ArticleResponse
	require.Equal(s.t, http.StatusCreated, s.call(http.MethodPost, "/api/articles", apphttp.RoleAdmin,
		dto.CreateArticleRequest{Code: "HAR", Name: "Harina", Unit: "kg", MinOnStock: dec("2")}, &flour))
	return vat.ID, flour.ID
}

// receive crea y aprueba una entrada de 10 kg a 20.00 sin IVA.
func (s *server) receive(vatID, articleID string) dto.DocumentResponse {
	s.t.Helper()
	var doc dto.DocumentResponse
	require.Equal(s.t, http.StatusCreated, s.call(http.MethodPost, "/api/documents", apphttp.RoleBodeguero,
		dto.CreateDocumentRequest{Kind: "RECEIPT"}, &doc))
	price := dec("20.00")
	require.Equal(s.t, http.StatusCreated, s.call(http.MethodPost, "/api/documents/"+doc.ID+"/lines", apphttp.RoleBodeguero,
		dto.DocumentLineRequest{ArticleID: articleID, Amount: dec("10"), Unit: "kg", PriceWithoutVat: &price, VATID: &vatID}, nil))
	var approved dto.DocumentResponse
	require.Equal(s.t, http.StatusOK, s.call(http.MethodPost, "/api/documents/"+doc.ID+"/approve", apphttp.RoleBodeguero, nil, &approved))
	return approved
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_HealthYMetrics(t *testing.T) {
	s := newServer(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "kitchen-ledger", health["service"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "kitchen_ledger_http_requests_total")
	assert.Contains(t, string(body), `path="/health"`)
}

func TestRouter_APIRequiereToken(t *testing.T) {
	s := newServer(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, s.call(http.MethodGet, "/api/articles", "", nil, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EscriturasPorRol(t *testing.T) {
	s := newServer(t)
	vatID, flourID := s.fixture()

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, s.call(http.MethodPost, "/api/articles", apphttp.RoleCocinero,
		dto.CreateArticleRequest{Code: "SAL", Name: "Sal", Unit: "kg"}, &e))
	assert.Equal(t, "FORBIDDEN", e.Code)

	assert.Equal(t, http.StatusForbidden, s.call(http.MethodPost, "/api/documents", apphttp.RoleCocinero,
		dto.CreateDocumentRequest{Kind: "RECEIPT"}, nil))

	// Las lecturas quedan abiertas a cualquier rol.
	s.receive(vatID, flourID)
	var list dto.ArticleListResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles", apphttp.RoleCocinero, nil, &list))
	require.Len(t, list.Items, 1)
	assert.True(t, dec("10").Equal(list.Items[0].OnStock))
}

func TestRouter_ValidacionDeCuerpo(t *testing.T) {
	s := newServer(t)

	var e dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/articles", apphttp.RoleAdmin,
		map[string]string{"name": "Sin código"}, &e))
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "Code")

	require.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/documents", apphttp.RoleBodeguero,
		dto.CreateDocumentRequest{Kind: "TRANSFER"}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	require.Equal(t, http.StatusBadRequest, s.call(http.MethodGet, "/api/menus?date=14-10-2026", apphttp.RoleCocinero, nil, &e))
}

func TestRouter_UnidadDesconocidaYDuplicado(t *testing.T) {
	s := newServer(t)
	s.fixture()

	var e dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/articles", apphttp.RoleAdmin,
		dto.CreateArticleRequest{Code: "X", Name: "X", Unit: "lb"}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	require.Equal(t, http.StatusConflict, s.call(http.MethodPost, "/api/articles", apphttp.RoleAdmin,
		dto.CreateArticleRequest{Code: "HAR", Name: "Otra harina", Unit: "kg"}, &e))
	assert.Equal(t, "DUPLICATE", e.Code)

	require.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/articles/no-existe", apphttp.RoleAdmin, nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EntradaYSalida(t *testing.T) {
	s := newServer(t)
	vatID, flourID := s.fixture()

	approved := s.receive(vatID, flourID)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testUserID, *approved.ApprovedBy)
	require.NotNil(t, approved.Total)
	assert.True(t, dec("220").Equal(*approved.Total), "total con IVA: %s", approved.Total)

	var e dto.ErrorResponse
	require.Equal(t, http.StatusConflict, s.call(http.MethodPost, "/api/documents/"+approved.ID+"/approve", apphttp.RoleBodeguero, nil, &e))
	assert.Equal(t, "ALREADY_APPROVED", e.Code)

	var flour dto.ArticleResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles/"+flourID, apphttp.RoleBodeguero, nil, &flour))
	assert.True(t, dec("10").Equal(flour.OnStock))
	require.NotNil(t, flour.AveragePrice)
	assert.True(t, dec("20").Equal(*flour.AveragePrice))

	var issue dto.DocumentResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/documents", apphttp.RoleBodeguero,
		dto.CreateDocumentRequest{Kind: "ISSUE"}, &issue))
	assert.Equal(t, "ISSUE", issue.Kind)

	// Faltante: la línea se rechaza con el detalle del artículo.
	require.Equal(t, http.StatusConflict, s.call(http.MethodPost, "/api/documents/"+issue.ID+"/lines", apphttp.RoleBodeguero,
		dto.DocumentLineRequest{ArticleID: flourID, Amount: dec("100"), Unit: "kg"}, &e))
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	details, ok := e.Details.([]interface{})
	require.True(t, ok, "details: %#v", e.Details)
	require.Len(t, details, 1)
	item := details[0].(map[string]interface{})
	assert.Equal(t, flourID, item["article_id"])
	assert.Equal(t, "10", item["available"])
	assert.Equal(t, "100", item["requested"])

	// 500 g en una salida de artículo en kg.
	var withLine dto.DocumentResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/documents/"+issue.ID+"/lines", apphttp.RoleBodeguero,
		dto.DocumentLineRequest{ArticleID: flourID, Amount: dec("500"), Unit: "g"}, &withLine))
	require.Len(t, withLine.Lines, 1)
	assert.True(t, dec("10").Equal(withLine.Lines[0].Total), "0.5 kg a 20: %s", withLine.Lines[0].Total)

	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/documents/"+issue.ID+"/approve", apphttp.RoleBodeguero, nil, nil))
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles/"+flourID, apphttp.RoleBodeguero, nil, &flour))
	assert.True(t, dec("9.5").Equal(flour.OnStock))

	var movs []dto.StockMovementResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles/"+flourID+"/movements", apphttp.RoleBodeguero, nil, &movs))
	require.Len(t, movs, 2)

	var docs dto.DocumentListResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/documents?kind=issue&approved=true", apphttp.RoleBodeguero, nil, &docs))
	require.Len(t, docs.Items, 1)
	assert.Equal(t, issue.ID, docs.Items[0].ID)

	// Un artículo con movimientos no se elimina.
	require.Equal(t, http.StatusConflict, s.call(http.MethodDelete, "/api/articles/"+flourID, apphttp.RoleAdmin, nil, &e))
	assert.Equal(t, "ARTICLE_IN_USE", e.Code)
}

func TestRouter_EntradaSinPrecio(t *testing.T) {
	s := newServer(t)
	_, flourID := s.fixture()

	var doc dto.DocumentResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/documents", apphttp.RoleBodeguero,
		dto.CreateDocumentRequest{Kind: "RECEIPT"}, &doc))
	var e dto.ErrorResponse
	require.Equal(t, http.StatusUnprocessableEntity, s.call(http.MethodPost, "/api/documents/"+doc.ID+"/lines", apphttp.RoleBodeguero,
		dto.DocumentLineRequest{ArticleID: flourID, Amount: dec("1"), Unit: "kg"}, &e))
	assert.Equal(t, "MISSING_PRICE", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Menú y salida desde menú
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SalidaDesdeMenu(t *testing.T) {
	s := newServer(t)
	vatID, flourID := s.fixture()
	s.receive(vatID, flourID)

	var tg dto.TargetGroupResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/target-groups", apphttp.RoleAdmin,
		dto.CreateTargetGroupRequest{Name: "Adultos"}, &tg))
	var mt dto.MealTypeResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/meal-types", apphttp.RoleAdmin,
		dto.CreateMealTypeRequest{Name: "Almuerzo"}, &mt))
	var recipe dto.RecipeResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/recipes", apphttp.RoleAdmin, dto.CreateRecipeRequest{
		Name:        "Pan",
		NormAmount:  10,
		Ingredients: []dto.RecipeIngredientRequest{{ArticleID: flourID, Amount: dec("1000"), Unit: "g"}},
	}, &recipe))

	var e dto.ErrorResponse
	require.Equal(t, http.StatusUnprocessableEntity, s.call(http.MethodPost, "/api/documents/issues/from-menu", apphttp.RoleCocinero,
		dto.MenuIssueRequest{Date: "2026-10-14"}, &e))
	assert.Equal(t, "NO_MENU_DEFINED", e.Code)

	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/menus", apphttp.RoleCocinero, dto.CreateDailyMenuRequest{
		Date: "2026-10-14", Amount: 20, TargetGroupID: tg.ID, MealTypeID: mt.ID, RecipeID: recipe.ID,
	}, nil))

	var reqs dto.MenuRequirementsResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/menus/requirements?date=2026-10-14", apphttp.RoleCocinero, nil, &reqs))
	require.Len(t, reqs.Requirements, 1)
	assert.True(t, dec("2").Equal(reqs.Requirements[0].Quantity))
	assert.Equal(t, "kg", reqs.Requirements[0].Unit)

	var issued dto.MenuIssueResponse
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/documents/issues/from-menu", apphttp.RoleCocinero,
		dto.MenuIssueRequest{Date: "2026-10-14", TargetGroupID: &tg.ID}, &issued))
	assert.Equal(t, 1, issued.LineCount)
	require.NotNil(t, issued.Document.SourceMenuDate)
	assert.Equal(t, "2026-10-14", *issued.Document.SourceMenuDate)

	var refreshed dto.MenuIssueResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/documents/"+issued.Document.ID+"/refresh", apphttp.RoleCocinero, nil, &refreshed))
	assert.NotEqual(t, issued.Document.ID, refreshed.Document.ID)
	require.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/documents/"+issued.Document.ID, apphttp.RoleCocinero, nil, nil))

	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/documents/"+refreshed.Document.ID+"/approve", apphttp.RoleBodeguero, nil, nil))
	var flour dto.ArticleResponse
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles/"+flourID, apphttp.RoleCocinero, nil, &flour))
	assert.True(t, dec("8").Equal(flour.OnStock))

	// Una receta usada en el menú no se elimina.
	require.Equal(t, http.StatusConflict, s.call(http.MethodDelete, "/api/recipes/"+recipe.ID, apphttp.RoleAdmin, nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)
}

func TestRouter_IngredienteConUnidadIncompatible(t *testing.T) {
	s := newServer(t)
	_, flourID := s.fixture()

	var e dto.ErrorResponse
	require.Equal(t, http.StatusUnprocessableEntity, s.call(http.MethodPost, "/api/recipes", apphttp.RoleAdmin, dto.CreateRecipeRequest{
		Name:        "Sopa",
		NormAmount:  4,
		Ingredients: []dto.RecipeIngredientRequest{{ArticleID: flourID, Amount: dec("1"), Unit: "l"}},
	}, &e))
	assert.Equal(t, "RECIPE_UNITS", e.Code)
	assert.True(t, strings.Contains(e.Message, "Sopa"), e.Message)
}

func TestRouter_DashboardYReposicion(t *testing.T) {
	s := newServer(t)
	s.fixture()

	var summary dto.DashboardSummaryDTO
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/dashboard/summary", apphttp.RoleCocinero, nil, &summary))
	assert.Equal(t, 1, summary.Articles)
	assert.Equal(t, 1, summary.VATs)
	assert.Equal(t, 1, summary.ArticlesBelowMin)

	var list []dto.ReplenishmentSuggestionDTO
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/articles/replenishment", apphttp.RoleBodeguero, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "HAR", list[0].Code)
}
