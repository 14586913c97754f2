package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dcamposl/gestock-api/internal/application/auth"
	"github.com/dcamposl/gestock-api/internal/application/catalog"
	"github.com/dcamposl/gestock-api/internal/application/ledger"
	"github.com/dcamposl/gestock-api/internal/application/report"
	infrapdf "github.com/dcamposl/gestock-api/internal/infrastructure/pdf"
	"github.com/dcamposl/gestock-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcamposl/gestock-api/internal/interfaces/http"
	"github.com/dcamposl/gestock-api/pkg/config"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString(), "migrations"); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := catalog.NewCategoryUseCase(categoryRepo, productRepo, log)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, log)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movementRepo, log)
	reportUC := report.NewUseCase(productRepo, ledgerUC, infrapdf.NewMarotoReportGenerator())
	userUC := auth.NewUserUseCase(userRepo, log)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpirationHours,
		Issuer:   cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.Metrics.Enabled {
		app.Use(httpRouter.MetricsMiddleware())
		app.Get("/metrics", httpRouter.MetricsHandler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		LedgerUC:   ledgerUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
