package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/broker"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/internal/interfaces/realtime"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("conexión al almacén")
	}
	loc := cfg.App.Location()

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	m := metrics.New("almacen")

	// Notificaciones: el hub local siempre; con Redis, el relay publica y alimenta el hub
	hub := realtime.NewHub(realtime.DefaultBuffer, log).WithObserver(m)
	var publisher event.Publisher = hub
	if cfg.Redis.Enabled() {
		client, err := broker.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, notificaciones sólo locales")
		} else {
			defer client.Close()
			relay := broker.NewRelay(client, cfg.Redis.Channel, hub, realtime.Encode, log)
			publisher = relay
			go relay.Run(ctx)
		}
	}

	reports := report.NewUseCase(store, excel.NewWriter(), infrapdf.NewMarotoLabelGenerator(), loc)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Log:         log,
		Metrics:     m,
		SwaggerFile: "./docs/swagger.json",
	})
	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:  movement.NewEngine(store.Movements, loc),
		Scans:      scan.NewPipeline(store, loc).WithRecorder(m),
		Pallets:    usecase.NewPalletUseCase(store.Pallets, publisher, loc, log),
		BoxBatches: usecase.NewBoxBatchUseCase(store.BoxBatches, loc),
		Workers:    usecase.NewWorkerUseCase(store.Workers),
		Users:      usecase.NewUserUseCase(store.Users),
		AuthUC:     authUC,
		Reports:    reports,
		Hub:        hub,
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
		Health:     store.Ping,
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

	stop()
	hub.Close()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if store.Close != nil {
		if err := store.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cierre del almacén")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// openStore conecta el almacén elegido en STORE_DRIVER y prepara índices o esquema.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, mongodb.Config{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.Mongo.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return client.Repositories(), nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.Repositories(pool), nil
	case config.StoreMemory:
		return memory.New().Repositories(), nil
	}
	return nil, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
}
