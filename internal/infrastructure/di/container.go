package di

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/potionlab/internal/adapter/gateway/backup"
	"github.com/YoshitsuguKoike/potionlab/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/potionlab/internal/app"
	appconfig "github.com/YoshitsuguKoike/potionlab/internal/app/config"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/input"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/application/usecase/research"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	filestore "github.com/YoshitsuguKoike/potionlab/internal/infra/persistence/file"
	badgerstore "github.com/YoshitsuguKoike/potionlab/internal/infrastructure/persistence/badger"
	sqlitestore "github.com/YoshitsuguKoike/potionlab/internal/infrastructure/persistence/sqlite"
)

// Container is the DI container that holds all dependencies
// This implements manual dependency injection for Clean Architecture
type Container struct {
	// Infrastructure Layer
	fs      afero.Fs
	catalog *catalog.Catalog
	store   output.StateStore

	// Application Layer
	service *research.Service

	// Adapter Layer
	palette   *presenter.Palette
	presenter output.ResearchPresenter

	config Config
}

// Config holds configuration for the container
type Config struct {
	App          appconfig.Config
	Fs           afero.Fs  // Defaults to the OS filesystem
	OutputFormat string    // Overrides App.Output() when set (text, json)
	OutputWriter io.Writer // Defaults to stdout
	Logger       app.Logger
	IDs          trial.IDGenerator // Defaults to ULIDs
}

// NewContainer creates the container and loads the persisted session
func NewContainer(ctx context.Context, config Config) (*Container, error) {
	if config.App == nil {
		return nil, fmt.Errorf("application config is required")
	}
	c := &Container{config: config, fs: config.Fs}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.config.OutputWriter == nil {
		c.config.OutputWriter = os.Stdout
	}
	if c.config.Logger == nil {
		c.config.Logger = app.GetLogger()
	}

	if err := c.initializeInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	if err := c.initializeApplication(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := c.initializeAdapters(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize adapters: %w", err)
	}

	return c, nil
}

// initializeInfrastructure loads the catalog and opens the state store
func (c *Container) initializeInfrastructure(ctx context.Context) error {
	cfg := c.config.App

	catalogPath := cfg.CatalogPath()
	if catalogPath == "" {
		// A catalog.yaml in the base directory replaces the built-in one
		candidate := app.PathsFor(cfg.Home()).Catalog
		if ok, _ := afero.Exists(c.fs, candidate); ok {
			catalogPath = candidate
		}
	}
	cat, err := catalog.Load(c.fs, catalogPath)
	if err != nil {
		return err
	}
	c.catalog = cat

	switch cfg.Store() {
	case "file", "":
		c.store = filestore.NewStateStore(c.fs, cfg.StatePath(), c.config.Logger)
	case "sqlite":
		store, err := sqlitestore.Open(ctx, cfg.DBPath(), c.config.Logger)
		if err != nil {
			return err
		}
		c.store = store
	case "badger":
		bcfg := badgerstore.DefaultConfig(cfg.BadgerDir())
		bcfg.Logger = c.config.Logger
		store, err := badgerstore.Open(bcfg)
		if err != nil {
			return err
		}
		c.store = store
	default:
		return fmt.Errorf("unknown store: %s", cfg.Store())
	}
	c.config.Logger.Debug("using %s state store, catalog %q", cfg.Store(), catalogPath)
	return nil
}

// initializeApplication builds the research service and restores state
func (c *Container) initializeApplication(ctx context.Context) error {
	policy, err := MatrixPolicy(c.config.App.MatrixPrecedence())
	if err != nil {
		return err
	}

	c.service = research.NewService(c.catalog, c.store, research.Options{
		Policy:    policy,
		Recommend: recommend.Options{SkipPending: c.config.App.RecommendSkipPending()},
		IDs:       c.config.IDs,
		Logger:    c.config.Logger,
	})
	return c.service.Load(ctx)
}

// initializeAdapters initializes adapter layer components
func (c *Container) initializeAdapters() error {
	c.palette = presenter.NewPalette(c.catalog.Domain())

	format := c.config.OutputFormat
	if format == "" {
		format = c.config.App.Output()
	}
	switch format {
	case "json":
		c.presenter = presenter.NewJSONPresenter(c.config.OutputWriter)
	case "text", "":
		c.presenter = presenter.NewTextPresenter(c.config.OutputWriter, c.palette)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// MatrixPolicy converts configured state names into a projection policy.
// An empty list selects the default precedence.
func MatrixPolicy(names []string) (projection.Policy, error) {
	if len(names) == 0 {
		return projection.DefaultPolicy(), nil
	}
	policy := projection.Policy{}
	for _, n := range names {
		st, err := projection.ParseCellState(n)
		if err != nil {
			return projection.Policy{}, err
		}
		policy.Precedence = append(policy.Precedence, st)
	}
	return policy, nil
}

// BackupGateway creates the backup medium called name. An empty name
// selects the configured default.
func (c *Container) BackupGateway(ctx context.Context, name string) (output.BackupGateway, error) {
	cfg := c.config.App
	if name == "" {
		name = cfg.Backup()
	}
	switch name {
	case "clipboard":
		return backup.NewClipboardGateway(), nil
	case "file":
		return backup.NewFileGateway(c.fs, cfg.BackupDir()), nil
	case "s3":
		gw, err := backup.NewS3Gateway(ctx, backup.S3Config{
			BucketName: cfg.S3Bucket(),
			Prefix:     cfg.S3Prefix(),
			Region:     cfg.S3Region(),
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("unknown backup medium: %s", name)
	}
}

// UseCase returns the research use case
func (c *Container) UseCase() input.ResearchUseCase {
	return c.service
}

// Service returns the concrete research service
func (c *Container) Service() *research.Service {
	return c.service
}

// Catalog returns the session catalog
func (c *Container) Catalog() *catalog.Catalog {
	return c.catalog
}

// Palette returns the display palette
func (c *Container) Palette() *presenter.Palette {
	return c.palette
}

// Presenter returns the presenter
func (c *Container) Presenter() output.ResearchPresenter {
	return c.presenter
}

// Close closes all resources held by the container. It is safe to call
// more than once.
func (c *Container) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}
