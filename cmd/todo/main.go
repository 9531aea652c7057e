// Package main is the entry point for the todo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/FelipeCJSEP/todo/internal/app"
	"github.com/FelipeCJSEP/todo/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Create dependency injection container
	container, err := app.New()
	if err != nil {
		// A broken config file must not hide help and version
		if canRunWithoutConfig(args) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// canRunWithoutConfig reports whether args only ask for help or version.
func canRunWithoutConfig(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
