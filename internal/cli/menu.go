package cli

import (
	"fmt"
	"io"

	"github.com/FelipeCJSEP/todo/internal/app"
	"github.com/FelipeCJSEP/todo/internal/tui"
)

// launchMenu runs the interactive menu until the user exits.
func launchMenu(c *app.Container, w io.Writer) error {
	store, err := c.Tasks()
	if err != nil {
		return err
	}
	if err := tui.Run(store, c.AppConfig.Display); err != nil {
		return fmt.Errorf("run menu: %w", err)
	}

	_, _ = fmt.Fprintln(w, tui.GoodbyeMessage)
	return nil
}
