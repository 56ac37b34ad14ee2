package joinpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/renatotuller/rt-sql-studio/pkg/query"
	"github.com/renatotuller/rt-sql-studio/pkg/schema"
)

// JoinOption is one candidate route between two tables, described for a user
// choosing among ambiguous join paths.
type JoinOption struct {
	Path        Path   `json:"path"`
	Description string `json:"description"`
	Direct      bool   `json:"direct"`
}

// FindJoinOptions maps every discovered path to a human-readable description,
// shortest first.
func FindJoinOptions(nodes []schema.GraphNode, edges []schema.GraphEdge, fromID, toID string) []JoinOption {
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.DisplayName()
	}
	label := func(id string) string {
		if l, ok := labels[id]; ok {
			return l
		}
		return id
	}

	paths := FindAllPaths(nodes, edges, fromID, toID, DefaultMaxDepth)
	options := make([]JoinOption, 0, len(paths))
	for _, p := range paths {
		opt := JoinOption{Path: p, Direct: p.Length == 1}
		if opt.Direct {
			opt.Description = fmt.Sprintf("Direct relationship between %s and %s", label(fromID), label(toID))
		} else {
			names := make([]string, len(p.IntermediateTables))
			for i, id := range p.IntermediateTables {
				names[i] = label(id)
			}
			opt.Description = fmt.Sprintf("%d hops via %s", p.Length, strings.Join(names, ", "))
		}
		options = append(options, opt)
	}
	return options
}

// BuildJoins converts a chosen path into concrete join entries ready to be
// appended to a query AST. Aliases derive from the bare table name, with a
// numeric suffix when a name repeats along the path.
func BuildJoins(path Path, aliasOf func(tableID string) string) []query.Join {
	seen := make(map[string]int)
	alias := func(id string) string {
		if aliasOf != nil {
			if a := aliasOf(id); a != "" {
				return a
			}
		}
		base := query.BareName(id)
		seen[base]++
		if n := seen[base]; n > 1 {
			return fmt.Sprintf("%s_%d", base, n)
		}
		return base
	}

	joins := make([]query.Join, 0, len(path.Steps))
	sourceAlias := ""
	for i, step := range path.Steps {
		if i == 0 {
			sourceAlias = alias(step.From)
		}
		targetAlias := alias(step.To)
		joins = append(joins, query.Join{
			ID:            uuid.NewString(),
			Type:          query.JoinInner,
			SourceTableID: step.From,
			SourceAlias:   sourceAlias,
			SourceColumn:  step.FromColumn,
			TargetTableID: step.To,
			TargetAlias:   targetAlias,
			TargetColumn:  step.ToColumn,
		})
		sourceAlias = targetAlias
	}
	return joins
}

// RelatedTable is a table outside the included set that has at least one
// relationship into it, along with every such edge.
type RelatedTable struct {
	TableID string             `json:"tableId"`
	Edges   []schema.GraphEdge `json:"edges"`
}

// FindTablesWithRelationships performs a one-hop frontier search: given the
// tables already included in a query, it returns every other table touching
// the included set, with the connecting edges aggregated per candidate.
// Results are sorted by table id for deterministic output.
func FindTablesWithRelationships(nodes []schema.GraphNode, edges []schema.GraphEdge, includedTableIDs []string) []RelatedTable {
	included := make(map[string]bool, len(includedTableIDs))
	for _, id := range includedTableIDs {
		included[id] = true
	}
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	byTable := make(map[string][]schema.GraphEdge)
	for _, e := range edges {
		var candidate string
		switch {
		case included[e.From] && !included[e.To]:
			candidate = e.To
		case included[e.To] && !included[e.From]:
			candidate = e.From
		default:
			continue
		}
		if !known[candidate] {
			continue
		}
		byTable[candidate] = append(byTable[candidate], e)
	}

	out := make([]RelatedTable, 0, len(byTable))
	for id, aggregated := range byTable {
		out = append(out, RelatedTable{TableID: id, Edges: aggregated})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
	return out
}
