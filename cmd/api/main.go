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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	_ "github.com/jhoicas/kitchen-ledger/docs"
	appanalytics "github.com/jhoicas/kitchen-ledger/internal/application/analytics"
	"github.com/jhoicas/kitchen-ledger/internal/application/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kitchen-ledger/internal/interfaces/http"
	"github.com/jhoicas/kitchen-ledger/pkg/config"
	"github.com/jhoicas/kitchen-ledger/pkg/logger"
)

// backend repositorios y TxRunner del almacén elegido por APP_STORE.
type backend struct {
	txRunner  ledger.TxRunner
	articles  repository.ArticleRepository
	documents repository.StockDocumentRepository
	movements repository.StockMovementRepository
	recipes   repository.RecipeRepository
	menus     repository.DailyMenuRepository
	vats      repository.VATRepository
	catalog   repository.CatalogRepository
	analytics repository.AnalyticsRepository
	close     func()
}

// @title                       Kitchen Ledger API
// @version                     1.0
// @description                 Bodega de cocina: artículos, recetas, menú diario, entradas y salidas con precio promedio ponderado.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer be.close()

	recorder := metrics.NewRecorder(cfg.Metrics.Prefix)

	articleUC := usecase.NewArticleUseCase(be.txRunner, be.articles, be.catalog)
	recipeUC := usecase.NewRecipeUseCase(be.txRunner, be.recipes, be.articles)
	menuUC := usecase.NewMenuUseCase(be.menus, be.recipes, be.articles, be.catalog)
	catalogUC := usecase.NewCatalogUseCase(be.vats, be.catalog)
	documentUC := ledger.NewDocumentUseCase(be.txRunner, be.documents, be.articles, be.vats, be.movements)
	approvalUC := ledger.NewApprovalUseCase(be.txRunner, recorder, log.Component("approval"))
	menuIssueUC := ledger.NewMenuIssueUseCase(be.txRunner, recorder, log.Component("menu_issue"))
	replenishmentUC := inventory.NewReplenishmentUseCase(be.articles, be.analytics)
	dashboardUC := appanalytics.NewDashboardUseCase(be.analytics, be.articles)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))
	if cfg.Metrics.Enabled {
		app.Use(httpRouter.Metrics(recorder))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kitchen Ledger API",
	}))

	deps := httpRouter.RouterDeps{
		ServiceName:   cfg.App.Name,
		ArticleUC:     articleUC,
		RecipeUC:      recipeUC,
		MenuUC:        menuUC,
		CatalogUC:     catalogUC,
		DocumentUC:    documentUC,
		ApprovalUC:    approvalUC,
		MenuIssueUC:   menuIssueUC,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = recorder.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}
	httpRouter.Router(app, deps)

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

// openBackend APP_STORE=memory no persiste nada entre reinicios (desarrollo y demos).
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.App.Store == config.StoreMemory {
		store := memory.NewStore()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &backend{
			txRunner:  store,
			articles:  store.Articles(),
			documents: store.Documents(),
			movements: store.Movements(),
			recipes:   store.Recipes(),
			menus:     store.Menus(),
			vats:      store.VATs(),
			catalog:   store.Catalog(),
			analytics: store.Analytics(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return &backend{
		txRunner:  postgres.NewTxRunner(pool),
		articles:  postgres.NewArticleRepository(pool),
		documents: postgres.NewStockDocumentRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		recipes:   postgres.NewRecipeRepository(pool),
		menus:     postgres.NewDailyMenuRepository(pool),
		vats:      postgres.NewVATRepository(pool),
		catalog:   postgres.NewCatalogRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
