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

	"github.com/ramzib/dukan-pos/internal/application/alerts"
	"github.com/ramzib/dukan-pos/internal/application/auth"
	"github.com/ramzib/dukan-pos/internal/application/reports"
	"github.com/ramzib/dukan-pos/internal/application/sales"
	"github.com/ramzib/dukan-pos/internal/application/usecase"
	"github.com/ramzib/dukan-pos/internal/infrastructure/cache"
	"github.com/ramzib/dukan-pos/internal/infrastructure/notify"
	"github.com/ramzib/dukan-pos/internal/infrastructure/postgres"
	httpRouter "github.com/ramzib/dukan-pos/internal/interfaces/http"
	"github.com/ramzib/dukan-pos/pkg/config"
	"github.com/ramzib/dukan-pos/pkg/logger"

	_ "github.com/ramzib/dukan-pos/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		// Redis configuré mais injoignable: on continue sans cache plutôt
		// que de bloquer le point de vente.
		log.Warn().Err(err).Msg("cache Redis injoignable, résumé dashboard sans cache")
		summaryCache = cache.NewNoopSummaryCache()
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, productRepo, customerRepo)
	saleUC := sales.NewSaleUseCase(saleRepo)
	alertUC := alerts.NewAlertUseCase(alertRepo)
	alertRefreshUC := alerts.NewRefreshUseCase(alertRepo, productRepo, customerRepo, notify.NewLogNotifier(log))
	reportUC := reports.NewReportUseCase(saleRepo, productRepo, summaryCache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dukan POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		CreateSale:   createSaleUC,
		SaleUC:       saleUC,
		AlertUC:      alertUC,
		AlertRefresh: alertRefreshUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
