package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/renatotuller/rt-sql-studio/internal/cli/config"
	"github.com/renatotuller/rt-sql-studio/pkg/sqlscan"
	"github.com/spf13/cobra"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	OutputFormat string
	GraphPath    string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Extract tables, joins and aliases from raw SQL",
		Long: `Scan a SQL statement and report the tables it references, the join
relationships between them and the alias mapping in use.

With --graph, the findings are additionally matched against a schema graph
and the matching node and edge ids are reported.`,
		Example: `  # Analyze a SQL file
  sqlstudio analyze query.sql

  # Analyze from stdin as JSON
  echo "SELECT * FROM orders o JOIN customers c ON o.customer_id = c.id" | sqlstudio analyze --output json

  # Match findings against a schema graph
  sqlstudio analyze query.sql --graph schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runAnalyze(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputFormat, "output", "", "Output format (table|json), overrides config")
	cmd.Flags().StringVar(&opts.GraphPath, "graph", "", "Schema graph to match findings against, overrides config")

	return cmd
}

// analysisReport is the JSON output shape of the analyze command.
type analysisReport struct {
	sqlscan.Result
	Highlight *highlightReport `json:"highlight,omitempty"`
}

type highlightReport struct {
	NodeIDs []string `json:"nodeIds"`
	EdgeIDs []string `json:"edgeIds"`
}

func runAnalyze(cmd *cobra.Command, path string, opts *AnalyzeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	sql := string(data)

	res := sqlscan.Analyze(sql)
	logger.Debug("analyzed sql",
		"tables", len(res.Tables), "joins", len(res.Joins), "aliases", len(res.Aliases))

	report := analysisReport{Result: res}

	graphPath := cfg.GraphPath
	if opts.GraphPath != "" {
		graphPath = opts.GraphPath
	}
	if graphPath != "" {
		g, err := loadGraph(graphPath)
		if err != nil {
			return err
		}
		hl := sqlscan.HighlightQuery(sql, g.NodeIDs(), g.Edges)
		report.Highlight = &highlightReport{
			NodeIDs: sortedKeys(hl.NodeIDs),
			EdgeIDs: sortedKeys(hl.EdgeIDs),
		}
	}

	format := cfg.OutputFormat
	if opts.OutputFormat != "" {
		format = opts.OutputFormat
	}
	if format == "json" {
		return printJSON(cmd, report)
	}
	return analyzeTables(cmd, report)
}

// analyzeTables renders the report as a set of terminal tables.
func analyzeTables(cmd *cobra.Command, report analysisReport) error {
	w := cmd.OutOrStdout()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Tables")
	t.AppendHeader(table.Row{"#", "Table"})
	for i, tbl := range report.Tables {
		t.AppendRow(table.Row{i + 1, tbl})
	}
	t.Render()

	if len(report.Joins) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle("Joins")
		t.AppendHeader(table.Row{"From", "To", "Condition"})
		for _, j := range report.Joins {
			t.AppendRow(table.Row{j.From, j.To, j.Condition})
		}
		t.Render()
	}

	if len(report.Aliases) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle("Aliases")
		t.AppendHeader(table.Row{"Alias", "Table"})
		for _, alias := range sortedAliasKeys(report.Aliases) {
			t.AppendRow(table.Row{alias, report.Aliases[alias]})
		}
		t.Render()
	}

	if report.Highlight != nil {
		_, _ = fmt.Fprintf(w, "Matched nodes: %d, matched edges: %d\n",
			len(report.Highlight.NodeIDs), len(report.Highlight.EdgeIDs))
		for _, id := range report.Highlight.NodeIDs {
			_, _ = fmt.Fprintf(w, "  node %s\n", id)
		}
		for _, id := range report.Highlight.EdgeIDs {
			_, _ = fmt.Fprintf(w, "  edge %s\n", id)
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAliasKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
