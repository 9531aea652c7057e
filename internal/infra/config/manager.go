package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FelipeCJSEP/todo/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the config file.
type Manager struct {
	configHome string // e.g. ~/.config
}

// NewManager creates a new Manager using the XDG config directory.
func NewManager() *Manager {
	return &Manager{configHome: defaultConfigHome()}
}

// NewManagerWithDir creates a new Manager with a custom config home.
// This is useful for testing.
func NewManagerWithDir(configHome string) *Manager {
	return &Manager{configHome: configHome}
}

// GetConfigInfo returns information about the config file.
func (m *Manager) GetConfigInfo() domain.ConfigInfo {
	if m.configHome == "" {
		return domain.ConfigInfo{}
	}
	path := domain.ConfigPath(m.configHome)
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig creates the config file from the default template.
func (m *Manager) InitConfig(cfg *domain.Config) error {
	if m.configHome == "" {
		return errors.New("config directory not available")
	}
	path := domain.ConfigPath(m.configHome)

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, domain.ErrConfigExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	content := domain.RenderConfigTemplate(cfg)
	return os.WriteFile(path, []byte(content), 0o600)
}
