package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcamposl/gestock-api/internal/application/auth"
	"github.com/dcamposl/gestock-api/internal/application/catalog"
	"github.com/dcamposl/gestock-api/internal/application/ledger"
	"github.com/dcamposl/gestock-api/internal/application/report"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	UserUC     *auth.UserUseCase
	CategoryUC *catalog.CategoryUseCase
	ProductUC  *catalog.ProductUseCase
	LedgerUC   *ledger.UseCase
	ReportUC   *report.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Lecturas de catálogo y movimientos: cualquier usuario autenticado.
// Escrituras de catálogo y reportes: Moderator o superior.
// Administración de usuarios: SuperAdmin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/validate", authHandler.ValidateToken)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	moderator := RequireRole(entity.RoleModerator)
	superAdmin := RequireRole(entity.RoleSuperAdmin)

	// Categories (protegido; escrituras Moderator+)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", moderator, categoryHandler.Create)
	categories.Put("/:id", moderator, categoryHandler.Update)
	categories.Delete("/:id", moderator, categoryHandler.Delete)

	// Products (protegido; escrituras Moderator+). Las rutas fijas van antes
	// de /:id para que Fiber no las capture como parámetro.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/category/:categoryId", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", moderator, productHandler.Create)
	products.Put("/:id", moderator, productHandler.Update)
	products.Delete("/:id", moderator, productHandler.Delete)

	// Stock movements (protegido)
	movements := protected.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/add", movementHandler.Add)
	movements.Post("/remove", movementHandler.Remove)
	movements.Post("/adjust", movementHandler.Adjust)
	movements.Get("/", movementHandler.List)
	movements.Get("/date-range", movementHandler.ListByDateRange)
	movements.Get("/product/:productId", movementHandler.ListByProduct)

	// Reports (protegido, Moderator+)
	reports := protected.Group("/reports", moderator)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movements", reportHandler.Movements)

	// Users (protegido, SuperAdmin)
	users := protected.Group("/users", superAdmin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
