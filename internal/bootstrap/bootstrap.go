package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	appRepos "github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	appServices "github.com/yigit/uniconnect-fixtures/internal/app/services"
	"github.com/yigit/uniconnect-fixtures/internal/config"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/filestorage"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/logger"
	"github.com/yigit/uniconnect-fixtures/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config            *config.Config
	Store             *appRepos.EntityStore
	IntegrityService  appServices.IntegrityService
	ValidationService appServices.ValidationService
	FixtureService    appServices.FixtureService
	EditorService     appServices.EditorService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := logger.Get()
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies creates an empty store and the services that operate on it.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Config: cfg, Logger: lgr}

	deps.Store = appRepos.NewEntityStore(logger.Component("store"))
	deps.IntegrityService = appServices.NewIntegrityService(deps.Store, logger.Component("integrity"))
	deps.ValidationService = appServices.NewValidationService(deps.Store, cfg.CampusBounds(), logger.Component("validator"))
	deps.FixtureService = appServices.NewFixtureService(deps.Store, appServices.ExportOptions{
		SnapshotFilename: cfg.Export.SnapshotFilename,
		EventsComment:    cfg.Export.EventsComment,
		Indent:           cfg.Export.Indent,
	}, logger.Component("fixtures"))
	deps.EditorService = appServices.NewEditorService(deps.Store, logger.Component("editor"))

	return deps
}

// LoadData imports fixtures from source. A directory is read as one document
// per collection; a file is either a single collection named after it or a
// combined snapshot. An empty source falls back to the configured data dir.
func (d *Dependencies) LoadData(ctx context.Context, source string) (*dto.ImportResult, error) {
	if source == "" {
		source = d.Config.Data.Dir
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("data source %s: %w", source, err)
	}

	if info.IsDir() {
		storage, err := filestorage.NewLocalStorage(source, false)
		if err != nil {
			return nil, err
		}
		d.Logger.Info().Str("dir", source).Msg("Loading fixture directory")
		return d.FixtureService.ImportFrom(ctx, storage)
	}

	doc, err := filestorage.ReadDocument(source)
	if err != nil {
		return nil, err
	}
	if appServices.IsCollectionDocument(doc.Name) {
		return d.FixtureService.Import([]filestorage.Document{doc})
	}
	d.Logger.Info().Str("file", source).Msg("Loading fixture snapshot")
	return d.FixtureService.ImportSnapshot(doc.Data)
}

// LoadOrSeed loads source when it exists and falls back to the demo dataset otherwise
func (d *Dependencies) LoadOrSeed(ctx context.Context, source string) error {
	_, err := d.LoadData(ctx, source)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	d.Logger.Warn().Err(err).Msg("No fixture data found, using demo data")
	return seed.CreateDemoData(d.Store, d.EditorService, d.Logger)
}

// ExportStorage opens the configured export directory, creating it if needed
func (d *Dependencies) ExportStorage(dir string) (filestorage.ExportTarget, error) {
	if dir == "" {
		dir = d.Config.Data.ExportDir
	}
	storage, err := filestorage.NewLocalStorage(filepath.Clean(dir), true)
	if err != nil {
		d.Logger.Error().Err(err).Str("dir", dir).Msg("Failed to initialize export storage")
		return nil, fmt.Errorf("failed to initialize export storage: %w", err)
	}
	return storage, nil
}
