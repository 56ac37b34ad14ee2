package commands

import (
	"encoding/json"
	"fmt"

	"github.com/renatotuller/rt-sql-studio/internal/cli/config"
	"github.com/renatotuller/rt-sql-studio/pkg/query"
	"github.com/renatotuller/rt-sql-studio/pkg/sqlgen"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Dialect string
	Pretty  bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a query definition to SQL",
		Long: `Read a query AST as JSON from a file or stdin and print the SQL it
compiles to for the selected dialect.`,
		Example: `  # Render a saved query for MySQL
  sqlstudio render query.json

  # Render from stdin for SQL Server, one clause per line
  cat query.json | sqlstudio render --dialect sqlserver --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "SQL dialect (mysql|sqlserver), overrides config")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "Render SQL with one clause per line")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var ast query.AST
	if err := json.Unmarshal(data, &ast); err != nil {
		return fmt.Errorf("failed to decode query definition: %w", err)
	}

	dialect := cfg.Dialect
	if opts.Dialect != "" {
		dialect = opts.Dialect
	}
	pretty := cfg.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty = opts.Pretty
	}

	logger.Debug("rendering query", "dialect", dialect, "pretty", pretty)

	sql, err := sqlgen.Generate(&ast, sqlgen.Options{
		Dialect: sqlgen.Dialect(dialect),
		Pretty:  pretty,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
	return nil
}
