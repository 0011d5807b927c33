package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/kitchen-ledger/internal/application/analytics"
	"github.com/jhoicas/kitchen-ledger/internal/application/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName   string
	ArticleUC     *usecase.ArticleUseCase
	RecipeUC      *usecase.RecipeUseCase
	MenuUC        *usecase.MenuUseCase
	CatalogUC     *usecase.CatalogUseCase
	DocumentUC    *ledger.DocumentUseCase
	ApprovalUC    *ledger.ApprovalUseCase
	MenuIssueUC   *ledger.MenuIssueUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string

	// MetricsHandler se monta en MetricsPath si no es nil.
	MetricsHandler http.Handler
	MetricsPath    string
}

// Router registra las rutas de la API.
// Lecturas: cualquier rol autenticado. Escrituras: según el rol dueño del recurso; admin pasa siempre.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.MetricsHandler))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(RoleAdmin)
	storekeeper := RequireRole(RoleAdmin, RoleBodeguero)
	cook := RequireRole(RoleAdmin, RoleCocinero)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/vats", catalogHandler.ListVATs)
	api.Post("/vats", adminOnly, catalogHandler.CreateVAT)
	api.Get("/allergens", catalogHandler.ListAllergens)
	api.Post("/allergens", adminOnly, catalogHandler.CreateAllergen)
	api.Get("/target-groups", catalogHandler.ListTargetGroups)
	api.Post("/target-groups", adminOnly, catalogHandler.CreateTargetGroup)
	api.Get("/meal-types", catalogHandler.ListMealTypes)
	api.Post("/meal-types", adminOnly, catalogHandler.CreateMealType)

	// Artículos
	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.DocumentUC, deps.Replenishment)
	articles.Get("/", articleHandler.List)
	articles.Post("/", adminOnly, articleHandler.Create)
	articles.Get("/replenishment", articleHandler.Replenishment)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", adminOnly, articleHandler.Update)
	articles.Delete("/:id", adminOnly, articleHandler.Delete)
	articles.Get("/:id/movements", articleHandler.Movements)

	// Recetas
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", adminOnly, recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", adminOnly, recipeHandler.Update)
	recipes.Delete("/:id", adminOnly, recipeHandler.Delete)
	recipes.Get("/:id/expand", recipeHandler.Expand)
	recipes.Post("/:id/ingredients", adminOnly, recipeHandler.AddIngredient)
	recipes.Put("/:id/ingredients/:ingredient_id", adminOnly, recipeHandler.UpdateIngredient)
	recipes.Delete("/:id/ingredients/:ingredient_id", adminOnly, recipeHandler.DeleteIngredient)

	// Menú diario
	menus := api.Group("/menus")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menus.Get("/", menuHandler.List)
	menus.Post("/", cook, menuHandler.Create)
	menus.Get("/requirements", menuHandler.Requirements)
	menus.Get("/:id", menuHandler.GetByID)
	menus.Put("/:id", cook, menuHandler.Update)
	menus.Delete("/:id", cook, menuHandler.Delete)

	// Documentos de bodega
	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.ApprovalUC, deps.MenuIssueUC)
	documents.Get("/", documentHandler.List)
	documents.Post("/", storekeeper, documentHandler.Create)
	documents.Post("/issues/from-menu", cook, documentHandler.IssueFromMenu)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Delete("/:id", storekeeper, documentHandler.Delete)
	documents.Post("/:id/lines", storekeeper, documentHandler.AddLine)
	documents.Put("/:id/lines/:line_id", storekeeper, documentHandler.UpdateLine)
	documents.Delete("/:id/lines/:line_id", storekeeper, documentHandler.DeleteLine)
	documents.Post("/:id/approve", storekeeper, documentHandler.Approve)
	documents.Post("/:id/refresh", cook, documentHandler.Refresh)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
