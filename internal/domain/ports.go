package domain

import "time"

// TaskStorage persists the whole task collection.
type TaskStorage interface {
	// Load returns every stored task. A missing or corrupt file yields no tasks.
	Load() ([]*Task, error)

	// Save replaces the stored collection with tasks.
	Save(tasks []*Task) error
}

// Logger records task activity.
// taskID 0 means the entry is not about a single task.
type Logger interface {
	Info(taskID int, category, msg string)
	Debug(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the effective configuration (defaults, file, environment).
	Load() (*Config, error)
	// LoadFile returns the defaults overlaid with the config file, without
	// environment overrides.
	LoadFile() (*Config, error)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string // Config file path
	Content string // Raw file content (empty if missing)
	Exists  bool
}

// ConfigManager inspects and creates the config file.
type ConfigManager interface {
	// GetConfigInfo returns information about the config file.
	GetConfigInfo() ConfigInfo

	// InitConfig writes a commented config file rendered from cfg.
	// Returns ErrConfigExists if the file is already present.
	InitConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
