package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/renatotuller/rt-sql-studio/internal/cli/config"
	"github.com/renatotuller/rt-sql-studio/pkg/joinpath"
	"github.com/spf13/cobra"
)

// SuggestOptions holds options for the suggest command.
type SuggestOptions struct {
	OutputFormat string
	GraphPath    string
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand() *cobra.Command {
	opts := &SuggestOptions{}

	cmd := &cobra.Command{
		Use:   "suggest <table>...",
		Short: "Suggest tables related to those already in a query",
		Long: `Given the tables already included in a query, report every other table
in the schema graph with a direct relationship into the included set, along
with the connecting foreign keys.`,
		Example: `  # What can be joined onto orders?
  sqlstudio suggest shop.orders --graph schema.json

  # Candidates touching either of two included tables
  sqlstudio suggest shop.orders shop.customers --graph schema.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputFormat, "output", "", "Output format (table|json), overrides config")
	cmd.Flags().StringVar(&opts.GraphPath, "graph", "", "Schema graph to search, overrides config")

	return cmd
}

func runSuggest(cmd *cobra.Command, includedIDs []string, opts *SuggestOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	graphPath := cfg.GraphPath
	if opts.GraphPath != "" {
		graphPath = opts.GraphPath
	}
	g, err := loadGraph(graphPath)
	if err != nil {
		return err
	}

	related := joinpath.FindTablesWithRelationships(g.Nodes, g.Edges, includedIDs)
	logger.Debug("suggested related tables", "included", len(includedIDs), "candidates", len(related))

	format := cfg.OutputFormat
	if opts.OutputFormat != "" {
		format = opts.OutputFormat
	}
	if format == "json" {
		return printJSON(cmd, related)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle("Related tables")
	t.AppendHeader(table.Row{"Table", "Relationships"})
	for _, r := range related {
		descs := make([]string, len(r.Edges))
		for i, e := range r.Edges {
			descs[i] = e.From + "." + e.FromColumn + " = " + e.To + "." + e.ToColumn
		}
		t.AppendRow(table.Row{r.TableID, strings.Join(descs, "\n")})
	}
	t.Render()
	return nil
}
