package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/contracts-api/internal/application/analytics"
	"github.com/jhoicas/contracts-api/internal/application/auth"
	"github.com/jhoicas/contracts-api/internal/application/policy"
	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/contracts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/contracts-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/contracts-api/internal/infrastructure/redis"
	infraxlsx "github.com/jhoicas/contracts-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/contracts-api/internal/interfaces/http"
	"github.com/jhoicas/contracts-api/pkg/config"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// storage repositorios, runner de transacciones y lectura del dashboard según el driver.
type storage struct {
	repos     repository.Repos
	tx        repository.TxRunner
	dashboard repository.DashboardRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{repos: store.Repos(), tx: store, dashboard: store.Dashboard(), close: func() {}}, nil
	}

	dsn := cfg.DB.ConnectionString()
	if cfg.DB.Migrate {
		if err := postgres.Migrate(dsn); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		repos:     postgres.NewRepos(pool),
		tx:        postgres.NewTxRunner(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		close:     pool.Close,
	}, nil
}

func openSessions(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func(), error) {
	if cfg.Session.Driver == config.DriverMemory {
		return memory.NewSessionStore(), func() {}, nil
	}
	client, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return infraredis.NewSessionStore(client), func() { _ = client.Close() }, nil
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
		Str("sessions", cfg.Session.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de sesiones")
	}
	defer closeSessions()

	repos := store.repos
	userUC := usecase.NewUserUseCase(repos.Users, store.tx, log)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers, store.tx, log)
	equipmentUC := usecase.NewEquipmentUseCase(repos.Equipment, store.tx, log)
	contractUC := usecase.NewContractUseCase(repos.Contracts, store.tx, log)
	interventionUC := usecase.NewInterventionUseCase(repos.Interventions, store.tx, log)
	pvUC := usecase.NewPVUseCase(repos.PVs, store.tx, log)
	dashboardUC := appanalytics.NewDashboardUseCase(store.dashboard)
	reportUC := report.NewReportUseCase(repos, contractUC, infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewExporter())
	authUC := auth.NewAuthUseCase(repos.Users, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.Session.TTL(),
	}, log)

	// Administrador inicial
	if cfg.Admin.Password != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
		}
	}

	var metrics *httpRouter.Metrics
	if cfg.App.MetricsEnabled {
		metrics = httpRouter.NewMetrics("contracts_api")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Log:         log,
		SwaggerFile: "./docs/swagger.json",
	}, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		SupplierUC:     supplierUC,
		EquipmentUC:    equipmentUC,
		ContractUC:     contractUC,
		InterventionUC: interventionUC,
		PVUC:           pvUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		Policy:         policy.New(),
		Metrics:        metrics,
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
