// Package commands implements the sqlstudio subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/renatotuller/rt-sql-studio/internal/cli/config"
	"github.com/renatotuller/rt-sql-studio/pkg/schema"
	"github.com/spf13/cobra"
)

// getConfig returns the loaded configuration, falling back to defaults when
// a command runs outside the root command's PersistentPreRunE (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// readInput reads from the named file, or from the command's stdin when the
// argument is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// loadGraph reads and decodes the schema graph JSON document.
func loadGraph(path string) (*schema.Graph, error) {
	if path == "" {
		return nil, fmt.Errorf("no schema graph given (use --graph)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema graph %s: %w", path, err)
	}
	g, err := schema.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema graph %s: %w", path, err)
	}
	return g, nil
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
