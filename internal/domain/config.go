package domain

import (
	"bytes"
	_ "embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config_template.toml
var configTemplateContent string

// DefaultTimeFormat is how timestamps are displayed.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Storage  StorageConfig `toml:"storage"`
	Log      LogConfig     `toml:"log"`
	Display  DisplayConfig `toml:"display"`
}

// StorageConfig holds settings from the [storage] section.
type StorageConfig struct {
	Path string `toml:"path,omitempty"` // Tasks file location
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// DisplayConfig holds rendering settings from the [display] section.
type DisplayConfig struct {
	TimeFormat string `toml:"time_format,omitempty"` // Go layout for timestamps
	Color      bool   `toml:"color"`                 // Colored table output
}

// NewDefaultConfig returns the built-in defaults.
// tasksPath is the resolved default storage location.
func NewDefaultConfig(tasksPath string) *Config {
	return &Config{
		Storage: StorageConfig{Path: tasksPath},
		Log:     LogConfig{Level: "info"},
		Display: DisplayConfig{TimeFormat: DefaultTimeFormat, Color: true},
	}
}

// RenderConfigTemplate renders the commented config file written by "config init".
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").
		Funcs(template.FuncMap{"toml": tomlString}).
		Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

// tomlString encodes s as a TOML string value, quotes included.
func tomlString(s string) string {
	out, err := toml.Marshal(map[string]string{"v": s})
	if err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSpace(strings.TrimPrefix(string(out), "v = "))
}
