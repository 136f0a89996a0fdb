package cli

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/adapters/logging"
	"github.com/andrescamacho/colonysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	colonyCmd "github.com/andrescamacho/colonysim-go/internal/application/colony/commands"
	colonyQuery "github.com/andrescamacho/colonysim-go/internal/application/colony/queries"
	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// application is the wired object graph behind every subcommand
type application struct {
	cfg      *config.Config
	db       *gorm.DB
	mediator mediator.Mediator
	colonies planetary.ColonyRepository
	catalog  planetary.TypeCatalogRepository
	logger   common.OperationLogger
	closers  []io.Closer
}

// newApplication loads configuration, opens the database, and registers
// every command and query handler with the mediator
func newApplication() (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.NewStdLoggerFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	app := &application{
		cfg:      cfg,
		db:       db,
		mediator: mediator.NewMediator(),
		colonies: persistence.NewGormColonyRepository(db),
		catalog:  persistence.NewGormTypeCatalog(db),
		logger:   logger,
		closers:  []io.Closer{logCloser},
	}

	app.mediator.RegisterMiddleware(common.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		if err := app.enableMetrics(); err != nil {
			app.Close()
			return nil, err
		}
	}

	if err := app.registerHandlers(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// enableMetrics initializes the registry and the request/simulation collectors
func (a *application) enableMetrics() error {
	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))

	simulationCollector := metrics.NewSimulationMetricsCollector()
	if err := simulationCollector.Register(); err != nil {
		return fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	metrics.SetGlobalSimulationCollector(simulationCollector)

	return nil
}

func (a *application) registerHandlers() error {
	sim := a.cfg.Simulation
	catalogHandler := colonyCmd.NewSetTypeAttributeHandler(a.catalog)

	registrations := []error{
		mediator.RegisterHandler[*colonyQuery.GetColonyStatusQuery](a.mediator,
			colonyQuery.NewGetColonyStatusHandler(a.colonies, a.catalog)),
		mediator.RegisterHandler[*colonyQuery.ListColoniesQuery](a.mediator,
			colonyQuery.NewListColoniesHandler(a.colonies, a.catalog)),
		mediator.RegisterHandler[*colonyQuery.GetColonySnapshotQuery](a.mediator,
			colonyQuery.NewGetColonySnapshotHandler(a.colonies)),
		mediator.RegisterHandler[*colonyCmd.SimulateColonyCommand](a.mediator,
			colonyCmd.NewSimulateColonyHandler(a.colonies, a.catalog, sim.MaxEvents, sim.DefaultHorizon)),
		mediator.RegisterHandler[*colonyCmd.ImportColonyCommand](a.mediator,
			colonyCmd.NewImportColonyHandler(a.colonies, a.catalog)),
		mediator.RegisterHandler[*colonyCmd.DeleteColonyCommand](a.mediator,
			colonyCmd.NewDeleteColonyHandler(a.colonies)),
		mediator.RegisterHandler[*colonyCmd.SetTypeCapacityCommand](a.mediator, catalogHandler),
		mediator.RegisterHandler[*colonyCmd.SetTypeVolumeCommand](a.mediator, catalogHandler),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return nil
}

// context attaches the application logger
func (a *application) context(parent context.Context) context.Context {
	return common.WithLogger(parent, a.logger)
}

// Close releases the database and log destination
func (a *application) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	for _, closer := range a.closers {
		_ = closer.Close()
	}
}

// send dispatches a request and asserts the response type
func send[T any](ctx context.Context, app *application, request mediator.Request) (T, error) {
	var zero T
	response, err := app.mediator.Send(app.context(ctx), request)
	if err != nil {
		return zero, err
	}
	typed, ok := response.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", response)
	}
	return typed, nil
}
