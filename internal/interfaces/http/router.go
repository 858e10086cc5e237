package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Almacen-api/internal/interfaces/realtime"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name    string
	Log     *logger.Logger
	Metrics *metrics.Metrics // nil desactiva /metrics
	// SwaggerFile ruta del swagger.json; si no existe no se monta /docs.
	SwaggerFile string
}

// NewApp crea la aplicación con el manejo de errores, recover, log de peticiones y métricas.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(cfg.Log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log))
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name,
			}))
		}
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements  *movement.Engine
	Scans      *scan.Pipeline
	Pallets    *usecase.PalletUseCase
	BoxBatches *usecase.BoxBatchUseCase
	Workers    *usecase.WorkerUseCase
	Users      *usecase.UserUseCase
	AuthUC     *auth.AuthUseCase
	Reports    *report.UseCase
	Hub        *realtime.Hub
	Log        *logger.Logger
	JWTSecret  string
	// Health verifica el almacén; nil responde siempre ok.
	Health func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Movimientos de camión
	movementHandler := NewMovementHandler(deps.Movements)
	movements := protected.Group("/movements")
	movements.Post("/", RequireRoles(entity.MovementRoles), movementHandler.Open)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id/complete", RequireRoles(entity.MovementRoles), movementHandler.Complete)

	// Escaneo (la autorización por rol la resuelve el caso de uso)
	scanHandler := NewScanHandler(deps.Scans)
	protected.Post("/scan", scanHandler.Scan)
	protected.Get("/scan/log", RequireRoles(entity.AdminRoles), scanHandler.Log)

	warehouse := protected.Group("/warehouse-scans")
	warehouse.Post("/", RequireRoles(entity.WarehouseRoles), scanHandler.SaveToWarehouse)
	warehouse.Get("/check", scanHandler.Check)
	warehouse.Get("/", scanHandler.List)

	// Tarimas
	palletHandler := NewPalletHandler(deps.Pallets, deps.Reports)
	pallets := protected.Group("/pallets")
	pallets.Post("/", RequireRoles(entity.PalletWriteRoles), palletHandler.Create)
	pallets.Get("/", palletHandler.List)
	pallets.Delete("/", RequireRoles(entity.AdminRoles), palletHandler.DeleteByDay)
	pallets.Get("/:id/label", palletHandler.Label)
	pallets.Delete("/:id", RequireRoles(entity.AdminRoles), palletHandler.Delete)

	// Cajas
	boxHandler := NewBoxBatchHandler(deps.BoxBatches)
	boxes := protected.Group("/box-batches")
	boxes.Post("/", RequireRoles(entity.BoxRoles), boxHandler.Create)
	boxes.Get("/", boxHandler.List)
	boxes.Patch("/:id", RequireRoles(entity.BoxRoles), boxHandler.Update)
	boxes.Delete("/:id", RequireRoles(entity.BoxRoles), boxHandler.Delete)

	// Trabajadoras
	workerHandler := NewWorkerHandler(deps.Workers)
	workers := protected.Group("/workers")
	workers.Post("/", RequireRoles(entity.AdminRoles), workerHandler.Create)
	workers.Get("/", workerHandler.List)
	workers.Delete("/:id", RequireRoles(entity.AdminRoles), workerHandler.Delete)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.Users)
	users := protected.Group("/users", RequireRoles(entity.AdminRoles))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Delete("/:id", userHandler.Delete)

	// Exportaciones (admin)
	reportHandler := NewReportHandler(deps.Reports)
	protected.Get("/reports/:name", RequireRoles(entity.AdminRoles), reportHandler.Export)

	// Tiempo real: el token va en ?token= porque el navegador no envía headers en el upgrade
	if deps.Hub != nil {
		rt := NewRealtimeHandler(deps.Hub, deps.Log)
		app.Get("/ws/pallets", rt.RequireUpgrade, QueryTokenMiddleware(deps.JWTSecret), rt.Pallets())
	}
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "store": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
