// @title                       Stock Engine API
// @version                     1.0
// @description                 Motor de consistencia de stock: documentos de operación, saldos por ubicación y ledger inmutable.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-engine/docs"
	"github.com/jhoicas/stock-engine/internal/application/analytics"
	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/application/usecase"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
	"github.com/jhoicas/stock-engine/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-engine/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-engine/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stock-engine/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/stock-engine/internal/interfaces/http"
	"github.com/jhoicas/stock-engine/pkg/config"
	"github.com/jhoicas/stock-engine/pkg/logger"
)

// backend agrupa lo que depende del driver de almacenamiento elegido.
type backend struct {
	txRunner  inventory.TxRunner
	repos     inventory.Repos
	sequencer repository.Sequencer
	closers   []func()
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

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
		Str("storage", cfg.Storage.Driver).
		Str("sequence", cfg.Sequence.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := newBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	applier := inventory.NewMovementApplier(be.txRunner)
	operationSvc := inventory.NewOperationService(be.txRunner, be.repos, be.sequencer, applier, log)
	stockQuery := inventory.NewStockQueryService(be.repos)
	slipUC := inventory.NewSlipUseCase(be.repos, infrapdf.NewMarotoSlipGenerator())
	dashboardUC := analytics.NewDashboardUseCase(be.repos)

	warehouseUC := usecase.NewWarehouseUseCase(be.repos.Warehouses, be.repos.Locations)
	locationUC := usecase.NewLocationUseCase(be.repos.Locations, be.repos.Warehouses, be.repos.Stock, be.repos.Ledger)
	productUC := usecase.NewProductUseCase(be.repos.Products, be.repos.Stock, be.repos.Ledger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_" + fmt.Sprint(code), Message: err.Error()})
		},
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Stock Engine API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		LocationUC:  locationUC,
		ProductUC:   productUC,
		Operations:  operationSvc,
		StockQuery:  stockQuery,
		Slips:       slipUC,
		Dashboard:   dashboardUC,
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

func newBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	be := &backend{}

	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		be.txRunner, be.repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		be.closers = append(be.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				be.close()
				return nil, err
			}
			log.Info().Msg("esquema aplicado")
		}
		be.txRunner, be.repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
		if cfg.Sequence.Driver == "postgres" {
			be.sequencer = postgres.NewSequenceRepository(pool)
		}
	}

	switch cfg.Sequence.Driver {
	case "redis":
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			be.close()
			return nil, err
		}
		be.closers = append(be.closers, func() { _ = client.Close() })
		be.sequencer = infraredis.NewSequencer(client)
	case "memory":
		be.sequencer = memory.NewSequencer()
	}
	return be, nil
}
