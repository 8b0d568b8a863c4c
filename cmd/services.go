package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tempo-cli/tempo/internal/adapters/git"
	"github.com/tempo-cli/tempo/internal/adapters/notification"
	"github.com/tempo-cli/tempo/internal/adapters/storage"
	"github.com/tempo-cli/tempo/internal/analytics"
	"github.com/tempo-cli/tempo/internal/config"
	"github.com/tempo-cli/tempo/internal/logging"
	"github.com/tempo-cli/tempo/internal/ports"
	"github.com/tempo-cli/tempo/internal/services"
	"github.com/tempo-cli/tempo/internal/timer"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.Storage
	sessions *services.SessionService
	insights *services.InsightService
	tasks    *services.TaskService
	identity ports.Identity
	detector ports.WorkspaceDetector
	notifier *notification.Notifier
	config   *config.Config
	logger   *log.Logger
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}
	if debugMode {
		app.config.Log.Debug = true
	}

	// Initialize logger
	app.logger, err = logging.New(logging.Config{
		Debug:   app.config.Log.Debug,
		DataDir: app.config.Storage.DataDir,
	})
	if err != nil {
		app.logger = log.Default()
	}

	// Initialize notifier
	app.notifier = notification.New(app.config.ToPreferences())

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize workspace detector and identity
	app.detector = git.NewDetector()
	app.identity = services.NewLocalIdentity(app.config.ToUser())

	// Initialize services
	app.sessions = services.NewSessionService(app.storage, app.identity, app.detector, app.logger)
	app.insights = services.NewInsightService(app.storage, app.identity, analytics.NewEngine(), app.logger)
	app.tasks = services.NewTaskService(app.storage, app.logger)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// newMachine builds a countdown machine wired to the initialized services.
func newMachine() *timer.Machine {
	return timer.New(
		app.config.ToPreferences(),
		app.config.ToUser(),
		app.sessions,
		app.notifier,
		app.notifier,
		app.logger,
	)
}
