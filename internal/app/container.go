// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/infra/config"
	"github.com/FelipeCJSEP/todo/internal/infra/jsonstore"
	"github.com/FelipeCJSEP/todo/internal/infra/logging"
	"github.com/FelipeCJSEP/todo/internal/taskstore"
)

// Config holds the application paths.
type Config struct {
	ConfigPath string // Path to config.toml
	TasksPath  string // Path to tasks.json
	DataDir    string // Directory holding the activity log
}

// newConfig derives the paths from the tasks file location.
func newConfig(configPath, tasksPath string) Config {
	return Config{
		ConfigPath: configPath,
		TasksPath:  tasksPath,
		DataDir:    filepath.Dir(tasksPath),
	}
}

// Container provides dependency injection for the application.
// The task store is opened lazily so that setup commands work without it.
type Container struct {
	// Ports (interfaces bound to implementations)
	Storage       domain.TaskStorage
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	activity  *logging.Logger
	tasks     *taskstore.Store

	// Configuration
	Config Config
}

// New creates a new Container from the config file and environment.
func New() (*Container, error) {
	loader := config.NewLoader()
	return newContainer(loader, loader.Path(), config.NewManager())
}

// newContainer loads the configuration through loader and wires the real clock
// and console logger.
func newContainer(loader domain.ConfigLoader, configPath string, manager domain.ConfigManager) (*Container, error) {
	appConfig, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &Container{
		Clock:         domain.RealClock{},
		ConfigLoader:  loader,
		ConfigManager: manager,
		Logger:        logging.NewConsole(os.Stderr, false),
		AppConfig:     appConfig,
		Config:        newConfig(configPath, appConfig.Storage.Path),
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, storage domain.TaskStorage, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig(cfg.TasksPath)
	}
	return &Container{
		Storage:   storage,
		Clock:     clock,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// Configure applies command-line overrides. It must run before Tasks.
// An empty tasksPath keeps the configured location.
func (c *Container) Configure(tasksPath string, verbose bool, stderr io.Writer) {
	if tasksPath != "" {
		tasksPath = domain.ExpandHome(tasksPath)
		c.AppConfig.Storage.Path = tasksPath
		c.Config = newConfig(c.Config.ConfigPath, tasksPath)
	}
	if verbose {
		c.Logger = logging.NewConsole(stderr, true)
	}
}

// Tasks returns the task store, loading the tasks file on first use.
func (c *Container) Tasks() (*taskstore.Store, error) {
	if c.tasks != nil {
		return c.tasks, nil
	}

	logger := c.activityLogger()
	if c.Storage == nil {
		c.Storage = jsonstore.New(c.Config.TasksPath, logger)
	}

	store, err := taskstore.New(c.Storage, c.Clock, logger)
	if err != nil {
		return nil, err
	}
	c.tasks = store
	return store, nil
}

// activityLogger returns the domain logger shared by storage and store.
func (c *Container) activityLogger() domain.Logger {
	var file domain.Logger = domain.NopLogger{}
	if c.activity == nil && c.Config.DataDir != "" {
		c.activity = logging.New(c.Config.DataDir, logging.ParseLevel(c.AppConfig.Log.Level))
	}
	if c.activity != nil {
		file = c.activity
	}
	return logging.NewMirror(file, c.Logger)
}

// Close releases open resources.
func (c *Container) Close() error {
	if c.activity == nil {
		return nil
	}
	return c.activity.Close()
}
