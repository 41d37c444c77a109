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
	"github.com/jhoicas/GemeloDigital-api/internal/application/auth"
	appforecast "github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/application/ledger"
	infraforecast "github.com/jhoicas/GemeloDigital-api/internal/infrastructure/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/GemeloDigital-api/internal/interfaces/http"
	"github.com/jhoicas/GemeloDigital-api/pkg/config"
	"github.com/jhoicas/GemeloDigital-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recRepo := postgres.NewRecommendationRepository(pool)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, log)
	queryUC := ledger.NewStockQueryUseCase(stockRepo, txRepo, productRepo)
	lowStockUC := ledger.NewLowStockUseCase(stockRepo)

	forecastClient := infraforecast.NewClient(infraforecast.Config{
		BaseURL:        cfg.Forecast.BaseURL,
		ProbeTimeout:   time.Duration(cfg.Forecast.ProbeTimeout) * time.Second,
		RequestTimeout: time.Duration(cfg.Forecast.RequestTimeout) * time.Second,
	})
	orch := appforecast.NewOrchestrator(
		forecastClient, recRepo, lowStockUC, queryUC,
		appforecast.Params{
			PeriodDays:      cfg.Forecast.PeriodDays,
			HistoricalWeeks: cfg.Forecast.HistoricalWeeks,
			SafetyBuffer:    cfg.Forecast.SafetyBuffer,
			Workers:         cfg.Forecast.Workers,
		},
		log,
	)

	authUC := auth.NewAuthUseCase(cfg.Operator.Username, cfg.Operator.PasswordHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gemelo Digital API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:   ledgerUC,
		QueryUC:    queryUC,
		LowStockUC: lowStockUC,
		Orch:       orch,
		AuthUC:     authUC,
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
