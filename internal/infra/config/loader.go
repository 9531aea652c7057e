// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the config file.
const (
	EnvTasksFile = "TODO_FILE"
	EnvLogLevel  = "TODO_LOG_LEVEL"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file and the environment.
type Loader struct {
	configHome string // e.g. ~/.config
	dataHome   string // e.g. ~/.local/share
}

// NewLoader creates a new Loader using the XDG base directories.
func NewLoader() *Loader {
	return &Loader{
		configHome: defaultConfigHome(),
		dataHome:   defaultDataHome(),
	}
}

// NewLoaderWithDirs creates a new Loader with custom base directories.
// This is useful for testing.
func NewLoaderWithDirs(configHome, dataHome string) *Loader {
	return &Loader{
		configHome: configHome,
		dataHome:   dataHome,
	}
}

// defaultConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func defaultConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// defaultDataHome returns $XDG_DATA_HOME or ~/.local/share.
func defaultDataHome() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

// Path returns the config file path, or "" if no config directory is available.
func (l *Loader) Path() string {
	if l.configHome == "" {
		return ""
	}
	return domain.ConfigPath(l.configHome)
}

// DefaultTasksPath returns the tasks file used when nothing overrides it.
func (l *Loader) DefaultTasksPath() string {
	if l.dataHome == "" {
		return domain.TasksFileName
	}
	return domain.DefaultTasksPath(l.dataHome)
}

// Load returns the effective configuration.
// Precedence: defaults < config file < environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg, err := l.LoadFile()
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)
	cfg.Storage.Path = domain.ExpandHome(cfg.Storage.Path)
	return cfg, nil
}

// LoadFile returns the defaults overlaid with the config file only.
// Environment overrides are not applied.
func (l *Loader) LoadFile() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig(l.DefaultTasksPath())

	if path := l.Path(); path != "" {
		if err := loadFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return cfg, nil
}

// loadFile applies the keys present in the file onto cfg.
func loadFile(path string, cfg *domain.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	applyRaw(cfg, raw)
	return nil
}

// applyRaw copies known keys from the raw map into cfg and collects warnings.
func applyRaw(cfg *domain.Config, raw map[string]any) {
	var warnings []string
	warnType := func(section, key, want string) {
		warnings = append(warnings, fmt.Sprintf("invalid value for [%s].%s: expected %s", section, key, want))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "storage":
			for k, v := range m {
				switch k {
				case "path":
					if s, ok := v.(string); ok {
						if s != "" {
							cfg.Storage.Path = s
						}
					} else {
						warnType(section, k, "string")
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						if s != "" {
							cfg.Log.Level = s
						}
					} else {
						warnType(section, k, "string")
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "display":
			for k, v := range m {
				switch k {
				case "time_format":
					if s, ok := v.(string); ok {
						if s != "" {
							cfg.Display.TimeFormat = s
						}
					} else {
						warnType(section, k, "string")
					}
				case "color":
					if b, ok := v.(bool); ok {
						cfg.Display.Color = b
					} else {
						warnType(section, k, "boolean")
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [display]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	cfg.Warnings = append(cfg.Warnings, warnings...)
}

// applyEnv applies environment overrides.
func applyEnv(cfg *domain.Config) {
	if v := strings.TrimSpace(os.Getenv(EnvTasksFile)); v != "" {
		cfg.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}
