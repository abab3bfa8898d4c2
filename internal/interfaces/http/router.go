package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dfquintero/mercado-api/internal/application/auth"
	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/internal/application/usecase"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	Users      repository.UserRepository
	Sessions   ports.SessionStore
	Secret     string
	CookieName string
	CookieTTL  time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protect := AuthMiddleware(deps.Secret, deps.CookieName, deps.Sessions)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.CookieTTL)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/send-reset-password-email", authHandler.SendResetPasswordEmail)
	authGroup.Post("/reset-password/:uid/:token", authHandler.ResetPassword)
	authGroup.Get("/profile", protect, authHandler.Profile)
	authGroup.Post("/change-password", protect, authHandler.ChangePassword)

	// Products. El listado es público; el resto requiere autenticación.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", protect, productHandler.Create)
	// Rutas fijas antes de /:id para que no las capture el parámetro.
	products.Get("/search", protect, productHandler.Search)
	products.Get("/export.pdf", protect, productHandler.ExportPDF)
	products.Get("/:id", protect, productHandler.GetByID)
	products.Post("/:id/select", protect, productHandler.Select)
	products.Post("/:id/report", protect, productHandler.Report)
	products.Get("/:id/reports", protect, RequireStaff(deps.Users), productHandler.ListReports)
}
