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
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/auth"
	"github.com/tu-usuario/backoffice-api/internal/application/category"
	"github.com/tu-usuario/backoffice-api/internal/application/favorite"
	"github.com/tu-usuario/backoffice-api/internal/application/product"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/application/ticket"
	infrapdf "github.com/tu-usuario/backoffice-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/backoffice-api/internal/interfaces/http"
	"github.com/tu-usuario/backoffice-api/pkg/config"
	"github.com/tu-usuario/backoffice-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)

	auditor := audit.NewRecorder(auditRepo)
	auditQuery := audit.NewQuery(auditRepo)

	stockSvc := stock.NewService(stockRepo, auditor, log)
	productSvc := product.NewService(productRepo, stockSvc, auditor)
	receiptGen := infrapdf.NewTicketReceiptGenerator()
	ticketSvc := ticket.NewService(ticketRepo, productRepo, stockSvc, auditor, receiptGen)
	categorySvc := category.NewService(categoryRepo, auditor)
	favoriteSvc := favorite.NewService(favoriteRepo, productRepo)
	authUC := auth.NewUseCase(userRepo, auditor, auth.JWTConfig{
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
		Title:    "Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductSvc:  productSvc,
		StockSvc:    stockSvc,
		TicketSvc:   ticketSvc,
		CategorySvc: categorySvc,
		FavoriteSvc: favoriteSvc,
		AuditQuery:  auditQuery,
		JWTSecret:   cfg.JWT.Secret,
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
