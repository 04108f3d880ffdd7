package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/auth"
	"github.com/jhoicas/CellStock-api/internal/application/importer"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/assets"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/CellStock-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/CellStock-api/internal/interfaces/http"
	"github.com/jhoicas/CellStock-api/pkg/config"
	"github.com/jhoicas/CellStock-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("backend de persistencia")
	}
	defer be.close()

	boot, err := auth.Bootstrap(ctx, be.users, be.stores, auth.BootstrapInput{
		AdminEmail:         cfg.Bootstrap.AdminEmail,
		AdminPassword:      cfg.Bootstrap.AdminPassword,
		StoreName:          cfg.Bootstrap.StoreName,
		StoreAdminEmail:    cfg.Bootstrap.StoreAdminEmail,
		StoreAdminPassword: cfg.Bootstrap.StoreAdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}
	log.Info().
		Bool("super_admin_created", boot.SuperAdminCreated).
		Bool("store_created", boot.StoreCreated).
		Bool("store_admin_created", boot.StoreAdminCreated).
		Str("store", boot.StoreSlug).
		Msg("bootstrap completado")

	// Caché del dashboard: Redis si está configurado y responde, si no noop.
	var dashCache analytics.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, log.Zerolog())
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché deshabilitado")
			_ = rc.Close()
		} else {
			dashCache = rc
			defer rc.Close()
		}
		cancel()
	}

	logoStorage, err := assets.NewDiskStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	dashboardUC := analytics.NewDashboardUseCase(analytics.Repos{
		Stores:    be.stores,
		Users:     be.users,
		Models:    be.models,
		Units:     be.units,
		Customers: be.customers,
		Sales:     be.sales,
	}, dashCache)
	modelUC := usecase.NewModelUseCase(be.models, be.units, dashCache)
	unitUC := usecase.NewUnitUseCase(be.models, be.units, dashCache)
	customerUC := usecase.NewCustomerUseCase(be.customers, dashCache)
	saleEngine := sales.NewEngine(be.tx, be.customers, be.sales, infrapdf.NewReceiptGenerator(), dashCache)
	imp := importer.New(importer.Deps{
		Models:       modelUC,
		Units:        unitUC,
		Customers:    customerUC,
		Sales:        saleEngine,
		ModelRepo:    be.models,
		UnitRepo:     be.units,
		CustomerRepo: be.customers,
		Mappings:     be.mappings,
		Cache:        dashCache,
	})
	authUC := auth.NewAuthUseCase(be.users, be.stores, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Storage.MaxBytes) + 20<<20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "CellStock API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		Directory:   tenancy.NewDirectory(be.stores),
		AuthUC:      authUC,
		StoreUC:     usecase.NewStoreUseCase(be.stores, dashboardUC, logoStorage, cfg.Storage.MaxBytes),
		UserUC:      usecase.NewUserUseCase(be.users, be.stores),
		ModelUC:     modelUC,
		UnitUC:      unitUC,
		CustomerUC:  customerUC,
		SaleEngine:  saleEngine,
		DashboardUC: dashboardUC,
		Importer:    imp,
		Logger:      log,
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
