package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/auth"
	"github.com/tu-usuario/backoffice-api/internal/application/category"
	"github.com/tu-usuario/backoffice-api/internal/application/favorite"
	"github.com/tu-usuario/backoffice-api/internal/application/product"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/application/ticket"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductSvc  *product.Service
	StockSvc    *stock.Service
	TicketSvc   *ticket.Service
	CategorySvc *category.Service
	FavoriteSvc *favorite.Service
	AuditQuery  *audit.Query
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/users", adminOnly, authHandler.ListUsers)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductSvc)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockSvc)
	stockGroup.Post("/initialize", stockHandler.Initialize)
	stockGroup.Post("/increase", stockHandler.Increase)
	stockGroup.Post("/decrease", stockHandler.Decrease)
	stockGroup.Get("/:product_id", stockHandler.Get)

	// Tickets (protegido; eliminar solo admin)
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketSvc)
	tickets.Post("/consume", ticketHandler.Consume)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Post("/:id/print", ticketHandler.Print)
	tickets.Get("/:id/pdf", ticketHandler.Receipt)
	tickets.Delete("/:id", adminOnly, ticketHandler.Delete)

	// Categories (protegido; crear solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategorySvc)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Favorites (protegido, por usuario autenticado)
	favorites := protected.Group("/favorites")
	favoriteHandler := NewFavoriteHandler(deps.FavoriteSvc)
	favorites.Post("/", favoriteHandler.Add)
	favorites.Get("/", favoriteHandler.List)
	favorites.Delete("/:product_id", favoriteHandler.Remove)

	// Audit log (solo admin)
	auditHandler := NewAuditHandler(deps.AuditQuery)
	protected.Get("/audit", adminOnly, auditHandler.List)
}
