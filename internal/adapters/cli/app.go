package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/complex-planner/internal/adapters/catalogfile"
	"github.com/andrescamacho/complex-planner/internal/adapters/metrics"
	"github.com/andrescamacho/complex-planner/internal/adapters/persistence"
	applogging "github.com/andrescamacho/complex-planner/internal/application/logging"
	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/application/planner"
	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/infrastructure/config"
	"github.com/andrescamacho/complex-planner/internal/infrastructure/database"
	"github.com/andrescamacho/complex-planner/internal/infrastructure/logging"
)

// app holds the wiring shared by all commands
type app struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *zap.Logger
	registry *catalog.Registry
	service  *planner.Service
	mediator mediator.Mediator
	db       *gorm.DB
}

// newApp loads configuration and wires the planner. Storage commands pass
// withStorage to open the database.
func newApp(withStorage bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil {
			userCfg.Apply(&cfg.Planner)
		}
	}
	if gameID != "" {
		cfg.Planner.DefaultGame = gameID
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	registry, err := catalogfile.NewRegistry(cfg.Planner.CatalogPath, cfg.Planner.DefaultGame)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	a := &app{
		ctx:      applogging.WithLogger(context.Background(), logger),
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		mediator: mediator.NewMediator(),
	}

	recorder, err := a.setupMetrics()
	if err != nil {
		return nil, err
	}

	settings := planner.Settings{
		DefaultGame:      cfg.Planner.DefaultGame,
		ExcludedFactions: cfg.Planner.ExcludedFactions,
		MaxPasses:        cfg.Planner.MaxPasses,
		AutoFill:         cfg.Planner.AutoFillEnabled(),
	}
	opts := []planner.ServiceOption{planner.WithRecorder(recorder)}

	if withStorage {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.db = db

		repo := persistence.NewGormComplexRepository(db, registry,
			factorycomplex.WithLogger(logger),
			factorycomplex.WithExcludedFactions(settings.ExcludedFactions...),
			factorycomplex.WithMaxPasses(settings.MaxPasses),
			factorycomplex.WithRecorder(metrics.GlobalRecorder()),
		)
		opts = append(opts, planner.WithRepository(repo))
	}

	a.service = planner.NewService(registry, settings, opts...)
	if err := planner.RegisterHandlers(a.mediator, a.service); err != nil {
		a.close()
		return nil, err
	}

	logger.Debug("planner ready",
		zap.String("default_game", registry.Default().Game().ID()),
		zap.Int("games", len(registry.Games())),
		zap.Bool("storage", withStorage),
	)
	return a, nil
}

// setupMetrics registers the collectors when metrics are enabled. The
// returned recorder is nil otherwise.
func (a *app) setupMetrics() (planner.Recorder, error) {
	if !a.cfg.Metrics.Enabled {
		return nil, nil
	}
	if !metrics.IsEnabled() {
		metrics.InitRegistry()
	}

	plannerCollector := metrics.NewPlannerMetricsCollector()
	if err := plannerCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register planner metrics: %w", err)
	}
	metrics.SetGlobalPlannerCollector(plannerCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	a.mediator.Use(metrics.PrometheusMiddleware(commandCollector))

	return plannerCollector, nil
}

// catalog returns the catalog selected by --game or the default one
func (a *app) catalog() (*catalog.Catalog, error) {
	if gameID == "" {
		return a.registry.Default(), nil
	}
	return a.registry.Game(gameID)
}

// complexOptions returns the options for complexes built outside the service
func (a *app) complexOptions(extra ...factorycomplex.Option) []factorycomplex.Option {
	return a.service.ComplexOptions(a.ctx, extra...)
}

func (a *app) close() {
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("failed to export metrics", zap.Error(err))
		}
	}
	if a.db != nil {
		database.Close(a.db)
	}
	_ = a.logger.Sync()
}
