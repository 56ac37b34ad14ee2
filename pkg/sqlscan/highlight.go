package sqlscan

import (
	"strings"

	"github.com/renatotuller/rt-sql-studio/pkg/schema"
)

// Highlight is the subgraph a visualization layer should light up for an
// analyzed query.
type Highlight struct {
	NodeIDs map[string]struct{} `json:"nodeIds"`
	EdgeIDs map[string]struct{} `json:"edgeIds"`
}

// HighlightQuery analyzes the SQL text and matches the findings against the
// known schema graph, returning the node and edge id sets to highlight.
//
// Bare table names shared by multiple schemas resolve to the first indexed
// candidate unless one's trailing segment matches the extracted name. The
// first-match fallback is arbitrary but stable; callers needing a stricter
// tie-break must qualify their SQL.
func HighlightQuery(sql string, allTableIDs []string, allEdges []schema.GraphEdge) Highlight {
	res := Analyze(sql)
	hl := Highlight{
		NodeIDs: make(map[string]struct{}),
		EdgeIDs: make(map[string]struct{}),
	}

	index := buildNameIndex(allTableIDs)
	resolved := make(map[string]string, len(res.Tables))
	for _, t := range res.Tables {
		if id := resolveTable(index, t); id != "" {
			resolved[strings.ToLower(t)] = id
			hl.NodeIDs[id] = struct{}{}
		}
	}

	if len(res.Joins) == 0 {
		// No explicit joins: accept every schema edge between any two
		// highlighted tables.
		for _, e := range allEdges {
			if _, ok := hl.NodeIDs[e.From]; !ok {
				continue
			}
			if _, ok := hl.NodeIDs[e.To]; !ok {
				continue
			}
			hl.EdgeIDs[e.ID] = struct{}{}
		}
		return hl
	}

	for _, j := range res.Joins {
		fromID := resolved[strings.ToLower(j.From)]
		if fromID == "" {
			fromID = resolveTable(index, j.From)
		}
		toID := resolved[strings.ToLower(j.To)]
		if toID == "" {
			toID = resolveTable(index, j.To)
		}
		if fromID == "" || toID == "" {
			continue
		}

		fromCol, toCol := conditionColumns(j.Condition)
		for _, e := range allEdges {
			if matchEdge(e, fromID, toID, fromCol, toCol) {
				hl.EdgeIDs[e.ID] = struct{}{}
			}
		}
	}
	return hl
}

// buildNameIndex maps the lowercased full id and its bare table name to the
// candidate ids carrying them.
func buildNameIndex(allTableIDs []string) map[string][]string {
	index := make(map[string][]string, len(allTableIDs)*2)
	add := func(key, id string) {
		key = strings.ToLower(key)
		index[key] = append(index[key], id)
	}
	for _, id := range allTableIDs {
		add(id, id)
		if bare := bareName(id); bare != id {
			add(bare, id)
		}
	}
	return index
}

// resolveTable maps an extracted table name to a schema node id, or "".
func resolveTable(index map[string][]string, name string) string {
	key := strings.ToLower(name)
	candidates := index[key]
	if len(candidates) == 0 {
		candidates = index[strings.ToLower(bareName(name))]
	}
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}
	for _, c := range candidates {
		if strings.HasSuffix(strings.ToLower(c), key) {
			return c
		}
	}
	return candidates[0]
}

// conditionColumns pulls the column pair out of a recorded join condition.
// Empty results mean column-level matching is unavailable.
func conditionColumns(condition string) (string, string) {
	m := equalityRe.FindStringSubmatch(condition)
	if m == nil {
		return "", ""
	}
	return m[2], m[4]
}

// matchEdge reports whether the schema edge connects the two resolved ids,
// with the column pair checked in both directions when available.
func matchEdge(e schema.GraphEdge, fromID, toID, fromCol, toCol string) bool {
	forward := e.From == fromID && e.To == toID
	reverse := e.From == toID && e.To == fromID
	if !forward && !reverse {
		return false
	}
	if fromCol == "" || toCol == "" {
		// No column information: any edge between the two tables counts.
		return true
	}
	if forward && strings.EqualFold(e.FromColumn, fromCol) && strings.EqualFold(e.ToColumn, toCol) {
		return true
	}
	if reverse && strings.EqualFold(e.FromColumn, toCol) && strings.EqualFold(e.ToColumn, fromCol) {
		return true
	}
	// Tolerate a condition written in the opposite orientation.
	if forward && strings.EqualFold(e.FromColumn, toCol) && strings.EqualFold(e.ToColumn, fromCol) {
		return true
	}
	if reverse && strings.EqualFold(e.FromColumn, fromCol) && strings.EqualFold(e.ToColumn, toCol) {
		return true
	}
	return false
}
