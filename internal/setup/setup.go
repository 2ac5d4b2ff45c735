package setup

import (
	"log"
	"path/filepath"
	"time"

	"github.com/minglehq/mingle/internal/api"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/session"
	"github.com/minglehq/mingle/internal/setup/config"
	"github.com/minglehq/mingle/internal/setup/logging"
	"go.uber.org/zap"
)

// App contains the common components every command needs.
type App struct {
	Config    *config.Config
	ConfigDir string
	Logger    *zap.Logger
	Session   *session.Store
	Feed      *feed.Service
	Mutations *mutation.Coordinator
}

// InitializeApp performs common setup tasks and returns an App. Logs land in
// a per-run session directory under <configDir>/logs.
func InitializeApp() (*App, error) {
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.SetupLogging(filepath.Join(configDir, "logs"), cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	sessionStore := session.Open(configDir, logger)

	client := api.NewClient(
		cfg.API.BaseURL,
		sessionStore,
		time.Duration(cfg.API.RequestTimeout)*time.Millisecond,
		logger,
	)

	return &App{
		Config:    cfg,
		ConfigDir: configDir,
		Logger:    logger,
		Session:   sessionStore,
		Feed:      feed.NewService(client, logger),
		Mutations: mutation.NewCoordinator(logger),
	}, nil
}

// CleanupApp performs cleanup tasks.
func (a *App) CleanupApp() {
	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
}
