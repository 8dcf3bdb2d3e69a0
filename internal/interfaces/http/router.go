// Package http expose l'API REST: handlers Fiber, middleware d'authentification
// et enregistrement des routes.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ramzib/dukan-pos/internal/application/alerts"
	"github.com/ramzib/dukan-pos/internal/application/auth"
	"github.com/ramzib/dukan-pos/internal/application/reports"
	"github.com/ramzib/dukan-pos/internal/application/sales"
	"github.com/ramzib/dukan-pos/internal/application/usecase"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *usecase.CustomerUseCase
	CreateSale   *sales.CreateSaleUseCase
	SaleUC       *sales.SaleUseCase
	AlertUC      *alerts.AlertUseCase
	AlertRefresh *alerts.RefreshUseCase
	ReportUC     *reports.ReportUseCase
	JWTSecret    string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protégé)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Customers (protégé)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/payments", customerHandler.RecordPayment)
	customers.Delete("/:id", customerHandler.Delete)

	// Sales (protégé)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC, deps.ReportUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Alerts (protégé)
	alertsGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC, deps.AlertRefresh)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Post("/refresh", alertHandler.Refresh)
	alertsGroup.Post("/read-all", alertHandler.MarkAllRead)
	alertsGroup.Patch("/:id/read", alertHandler.MarkRead)
	alertsGroup.Delete("/:id", alertHandler.Delete)

	// Reports et dashboard (protégé, réservé au propriétaire)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleOwner))
	reportsGroup.Get("/", reportHandler.GetReport)
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleOwner))
	dashboard.Get("/summary", reportHandler.GetDashboardSummary)
}
