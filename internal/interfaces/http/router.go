package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/auth"
	"github.com/jhoicas/CellStock-api/internal/application/importer"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Directory   *tenancy.Directory
	AuthUC      *auth.AuthUseCase
	StoreUC     *usecase.StoreUseCase
	UserUC      *usecase.UserUseCase
	ModelUC     *usecase.ModelUseCase
	UnitUC      *usecase.UnitUseCase
	CustomerUC  *usecase.CustomerUseCase
	SaleEngine  *sales.Engine
	DashboardUC *analytics.DashboardUseCase
	Importer    *importer.Importer
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", authn, authHandler.Me)

	// Administración de plataforma (solo super_admin)
	admin := api.Group("/admin", authn, RequireRole(entity.RoleSuperAdmin))
	adminHandler := NewAdminHandler(deps.StoreUC, deps.UserUC, deps.DashboardUC)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/stores", adminHandler.CreateStore)
	admin.Get("/stores", adminHandler.ListStores)
	admin.Get("/stores/:id", adminHandler.GetStore)
	admin.Put("/stores/:id", adminHandler.UpdateStore)
	admin.Post("/stores/:id/logo", adminHandler.UploadLogo)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	importHandler := NewImportHandler(deps.Importer, deps.Logger)
	admin.Get("/import/templates/:kind", importHandler.Template)
	admin.Post("/import/:storeId", AdminScope(deps.Directory), importHandler.Import)

	// Tienda (público)
	storeHandler := NewStoreHandler(deps.StoreUC, deps.DashboardUC)
	api.Get("/stores/:slug/verify", storeHandler.Verify)

	// Tienda (protegido: token + acceso a la tienda del slug)
	store := api.Group("/stores/:slug", authn, StoreScope(deps.Directory))
	store.Get("/dashboard", storeHandler.Dashboard)

	catalog := NewCatalogHandler(deps.ModelUC, deps.UnitUC)
	store.Post("/models", catalog.CreateModel)
	store.Get("/models", catalog.ListModels)
	store.Get("/models/:id", catalog.GetModel)
	store.Put("/models/:id", catalog.UpdateModel)
	store.Delete("/models/:id", catalog.DeleteModel)
	store.Post("/units", catalog.CreateUnit)
	store.Get("/units", catalog.ListUnits)
	store.Get("/units/:id", catalog.GetUnit)
	store.Put("/units/:id", catalog.UpdateUnit)
	store.Delete("/units/:id", catalog.DeleteUnit)

	customers := NewCustomerHandler(deps.CustomerUC)
	store.Post("/customers", customers.Create)
	store.Get("/customers", customers.List)
	store.Get("/customers/:id", customers.Get)
	store.Put("/customers/:id", customers.Update)
	store.Delete("/customers/:id", customers.Delete)

	saleHandler := NewSaleHandler(deps.SaleEngine)
	store.Post("/sales", saleHandler.Create)
	store.Get("/sales", saleHandler.List)
	store.Get("/sales/:id", saleHandler.Get)
	store.Put("/sales/:id", saleHandler.Update)
	store.Delete("/sales/:id", saleHandler.Delete)
	store.Get("/sales/:id/receipt", saleHandler.Receipt)
}
