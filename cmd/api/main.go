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

	"github.com/dfquintero/mercado-api/internal/application/auth"
	"github.com/dfquintero/mercado-api/internal/application/usecase"
	"github.com/dfquintero/mercado-api/internal/infrastructure/email"
	"github.com/dfquintero/mercado-api/internal/infrastructure/pdf"
	"github.com/dfquintero/mercado-api/internal/infrastructure/postgres"
	"github.com/dfquintero/mercado-api/internal/infrastructure/redisstore"
	httpRouter "github.com/dfquintero/mercado-api/internal/interfaces/http"
	"github.com/dfquintero/mercado-api/pkg/config"
	"github.com/dfquintero/mercado-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessions, err := redisstore.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer sessions.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	mailer := email.NewResendMailer(cfg.Email)
	catalogPDF := pdf.NewMarotoCatalogGenerator()

	authUC := auth.NewAuthUseCase(userRepo, sessions, mailer, auth.TokenConfig{
		Secret:     cfg.Auth.Secret,
		Issuer:     cfg.Auth.Issuer,
		AccessTTL:  time.Duration(cfg.Auth.AccessMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.Auth.RefreshMinutes) * time.Minute,
		ResetTTL:   time.Duration(cfg.Auth.ResetMinutes) * time.Minute,
		BaseURL:    cfg.App.BaseURL,
	})
	productUC := usecase.NewProductUseCase(productRepo, reportRepo, catalogPDF)

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
		Title:    "Mercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		Users:      userRepo,
		Sessions:   sessions,
		Secret:     cfg.Auth.Secret,
		CookieName: cfg.Auth.SessionCookieName,
		CookieTTL:  time.Duration(cfg.Auth.RefreshMinutes) * time.Minute,
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
