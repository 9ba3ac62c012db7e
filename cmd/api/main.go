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

	"github.com/betonpro/beton-api/internal/application/auth"
	"github.com/betonpro/beton-api/internal/application/costing"
	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/infrastructure/postgres"
	httpRouter "github.com/betonpro/beton-api/internal/interfaces/http"
	"github.com/betonpro/beton-api/pkg/config"
	"github.com/betonpro/beton-api/pkg/logger"
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

	resourceRepo := postgres.NewResourceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	rateRepo := postgres.NewCostRateRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	evaluator := stock.NewAlertEvaluator(time.Duration(cfg.Stock.AlertDedupMinutes) * time.Minute)

	ledgerUC := stock.NewLedgerUseCase(txRunner, movementRepo, resourceRepo, evaluator)
	resourceUC := stock.NewResourceUseCase(resourceRepo, ledgerUC)
	alertUC := stock.NewAlertUseCase(alertRepo)
	formulaUC := stock.NewFormulaUseCase(formulaRepo, resourceRepo)
	consumptionUC := stock.NewConsumptionUseCase(
		txRunner, formulaRepo, movementRepo, resourceRepo, evaluator,
		cfg.Stock.BlockOnShortage,
	)
	fuelUC := stock.NewFuelUseCase(txRunner, movementRepo, equipmentRepo, evaluator)

	priceResolver := costing.NewPriceResolver(purchaseRepo, resourceRepo)
	costingUC := costing.NewCostingUseCase(
		formulaRepo, rateRepo, priceResolver,
		time.Duration(cfg.Stock.PriceWindowDays)*24*time.Hour,
	)
	purchaseUC := costing.NewPurchaseUseCase(purchaseRepo, resourceRepo)
	rateUC := costing.NewRateUseCase(rateRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Beton API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:      ledgerUC,
		ResourceUC:    resourceUC,
		AlertUC:       alertUC,
		FormulaUC:     formulaUC,
		ConsumptionUC: consumptionUC,
		FuelUC:        fuelUC,
		CostingUC:     costingUC,
		PurchaseUC:    purchaseUC,
		RateUC:        rateUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
