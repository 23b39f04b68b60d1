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

	"github.com/jmcastillo/comercial-api/internal/application/auth"
	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/application/usecase"
	"github.com/jmcastillo/comercial-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmcastillo/comercial-api/internal/interfaces/http"
	"github.com/jmcastillo/comercial-api/pkg/config"
	"github.com/jmcastillo/comercial-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Repositorios atados al pool (lecturas fuera de transacción)
	poolRepos := postgres.NewTxRepos(pool)
	userRepo := postgres.NewUserRepository(pool)

	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS)
	auditSink := postgres.NewAuditSink(pool, log)

	ledger := kardex.NewLedgerService(txRunner, poolRepos)

	productUC := usecase.NewProductUseCase(poolRepos.Products)
	warehouseUC := usecase.NewWarehouseUseCase(poolRepos.Warehouses)
	purchaseUC := usecase.NewPurchaseUseCase(poolRepos.Purchases, poolRepos.Products, poolRepos.Warehouses)
	transferUC := usecase.NewTransferUseCase(poolRepos.Transfers, poolRepos.Warehouses)
	cashSessionUC := usecase.NewCashSessionUseCase(poolRepos.CashSessions)

	orchestrator := operations.NewOrchestrator(
		txRunner, cashSessionUC, auditSink, log, cfg.Kardex.ReturnWindowDays,
	)

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
	// El middleware entra en pánico si el archivo no existe, así que solo se monta
	// cuando el spec generado está presente.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Comercial API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("spec de swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		PurchaseUC:    purchaseUC,
		TransferUC:    transferUC,
		CashSessionUC: cashSessionUC,
		Ledger:        ledger,
		Orchestrator:  orchestrator,
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
