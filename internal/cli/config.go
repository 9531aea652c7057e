package cli

import (
	"fmt"
	"io"

	"github.com/FelipeCJSEP/todo/internal/app"
	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the todo configuration file and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after applying the config file,
environment variables (TODO_FILE, TODO_LOG_LEVEL) and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if c.ConfigManager != nil {
				info := c.ConfigManager.GetConfigInfo()
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, c.AppConfig)
		},
	}

	return cmd
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Generate a commented configuration file at
$XDG_CONFIG_HOME/todo/config.toml (default ~/.config/todo/config.toml).

The file holds the built-in defaults. --file and the TODO_FILE and
TODO_LOG_LEVEL environment variables are not written to it.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.ConfigManager == nil || c.ConfigLoader == nil {
				return fmt.Errorf("config directory not available")
			}
			cfg, err := c.ConfigLoader.LoadFile()
			if err != nil {
				return err
			}
			if err := c.ConfigManager.InitConfig(cfg); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", c.ConfigManager.GetConfigInfo().Path)
			return nil
		},
	}

	return cmd
}
