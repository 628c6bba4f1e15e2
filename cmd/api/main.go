package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appfifo "github.com/jhoicas/fifo-costing-api/internal/application/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
	"github.com/jhoicas/fifo-costing-api/internal/infrastructure/memory"
	"github.com/jhoicas/fifo-costing-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fifo-costing-api/internal/interfaces/http"
	"github.com/jhoicas/fifo-costing-api/pkg/config"
	"github.com/jhoicas/fifo-costing-api/pkg/logger"
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

	var (
		txRunner    appfifo.TxRunner
		txRepo      repository.TransactionRepository
		productRepo repository.ProductRepository
	)
	if os.Getenv("STORE_DRIVER") == "memory" {
		// Modo demo/dev sin PostgreSQL: todo se pierde al apagar.
		log.Warn().Msg("usando store en memoria (STORE_DRIVER=memory)")
		store := memory.NewStore()
		txRunner = store
		txRepo = store.TransactionRepository()
		productRepo = store.ProductRepository()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		txRepo = postgres.NewTransactionRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
	}

	recorder, err := appfifo.NewRecorderUseCase(txRunner, productRepo, appfifo.Config{
		AutoReference: cfg.Fifo.AutoReference,
		InPrefix:      cfg.Fifo.InPrefix,
		OutPrefix:     cfg.Fifo.OutPrefix,
		MaxAmount:     cfg.Fifo.MaxAmount,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar recorder")
	}
	queries, err := appfifo.NewQueryUseCase(txRepo, productRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar queries")
	}
	productUC, err := appfifo.NewProductUseCase(txRunner, txRepo, productRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar productos")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Recorder:  recorder,
		Queries:   queries,
		ProductUC: productUC,
		Auth: httpRouter.AuthConfig{
			APIKey:     cfg.Auth.APIKey,
			JWTSecret:  cfg.Auth.JWTSecret,
			Issuer:     cfg.Auth.Issuer,
			ExpMinutes: cfg.Auth.Expiration,
		},
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
