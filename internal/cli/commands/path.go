package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/renatotuller/rt-sql-studio/internal/cli/config"
	"github.com/renatotuller/rt-sql-studio/pkg/joinpath"
	"github.com/spf13/cobra"
)

// PathOptions holds options for the path command.
type PathOptions struct {
	OutputFormat string
	GraphPath    string
	MaxDepth     int
	Best         bool
	Joins        bool
}

// NewPathCommand creates the path command.
func NewPathCommand() *cobra.Command {
	opts := &PathOptions{}

	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find join paths between two tables",
		Long: `Search the schema graph for relationship paths between two tables,
shortest first. Every route within the depth bound is reported, described
the way the studio presents ambiguous join choices.`,
		Example: `  # All routes between two tables
  sqlstudio path shop.orders shop.items --graph schema.json

  # Only the shortest route
  sqlstudio path shop.orders shop.items --graph schema.json --best

  # Emit the join entries the shortest route expands to
  sqlstudio path shop.orders shop.items --graph schema.json --joins`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputFormat, "output", "", "Output format (table|json), overrides config")
	cmd.Flags().StringVar(&opts.GraphPath, "graph", "", "Schema graph to search, overrides config")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Maximum path length in hops (0 = config value)")
	cmd.Flags().BoolVar(&opts.Best, "best", false, "Report only the shortest route")
	cmd.Flags().BoolVar(&opts.Joins, "joins", false, "Emit join entries for the shortest route as JSON")

	return cmd
}

func runPath(cmd *cobra.Command, fromID, toID string, opts *PathOptions) error {
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
	if !g.HasNode(fromID) {
		return fmt.Errorf("unknown table %q", fromID)
	}
	if !g.HasNode(toID) {
		return fmt.Errorf("unknown table %q", toID)
	}

	maxDepth := cfg.MaxDepth
	if opts.MaxDepth > 0 {
		maxDepth = opts.MaxDepth
	}
	logger.Debug("searching join paths", "from", fromID, "to", toID, "maxDepth", maxDepth)

	if opts.Joins {
		best := joinpath.FindBestPath(g.Nodes, g.Edges, fromID, toID)
		if best == nil {
			return fmt.Errorf("no join path between %s and %s", fromID, toID)
		}
		return printJSON(cmd, joinpath.BuildJoins(*best, nil))
	}

	options := joinpath.FindJoinOptions(g.Nodes, g.Edges, fromID, toID)
	if maxDepth > 0 {
		options = capOptions(options, maxDepth)
	}
	if len(options) == 0 {
		return fmt.Errorf("no join path between %s and %s", fromID, toID)
	}
	if opts.Best {
		options = options[:1]
	}
	return renderPaths(cmd, opts.OutputFormat, options)
}

// capOptions drops routes longer than maxDepth hops.
func capOptions(options []joinpath.JoinOption, maxDepth int) []joinpath.JoinOption {
	out := options[:0]
	for _, opt := range options {
		if opt.Path.Length <= maxDepth {
			out = append(out, opt)
		}
	}
	return out
}

func renderPaths(cmd *cobra.Command, override string, options []joinpath.JoinOption) error {
	cfg := getConfig()
	format := cfg.OutputFormat
	if override != "" {
		format = override
	}
	if format == "json" {
		return printJSON(cmd, options)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle("Join paths")
	t.AppendHeader(table.Row{"#", "Hops", "Route", "Description"})
	for i, opt := range options {
		t.AppendRow(table.Row{i + 1, opt.Path.Length, formatRoute(opt.Path), opt.Description})
	}
	t.Render()
	return nil
}

// formatRoute renders a path as "a.id -> b.a_id -> c" style text.
func formatRoute(p joinpath.Path) string {
	if len(p.Steps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(p.Steps[0].From)
	for _, s := range p.Steps {
		fmt.Fprintf(&b, " -(%s=%s)-> %s", s.FromColumn, s.ToColumn, s.To)
	}
	return b.String()
}
