// Package joinpath discovers relationship paths between tables in the schema
// graph. It powers join auto-suggestion: when the user connects two tables
// with no direct foreign key, the resolver enumerates direct and multi-hop
// routes for them to choose from.
package joinpath

import (
	"sort"
	"strconv"

	"github.com/renatotuller/rt-sql-studio/pkg/schema"
)

// DefaultMaxDepth bounds path search. BFS is exponential on dense graphs in
// the worst case, so the cap is a hard safety bound, not a tuning knob.
const DefaultMaxDepth = 5

// bestPathMaxDepth is the tighter cap used when only the single shortest
// route is wanted.
const bestPathMaxDepth = 3

// Step is one hop of a path. From/To follow traversal direction; columns are
// swapped relative to the underlying edge when it was walked in reverse, so
// the pair is always geometrically correct.
type Step struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromColumn string `json:"fromColumn"`
	ToColumn   string `json:"toColumn"`
	EdgeID     string `json:"edgeId"`
}

// Path is a route between two tables. Length is the number of hops.
type Path struct {
	Steps              []Step   `json:"edges"`
	IntermediateTables []string `json:"intermediateTables"`
	Length             int      `json:"length"`
}

// halfEdge is one direction of an edge in the adjacency index.
type halfEdge struct {
	to         string
	fromColumn string
	toColumn   string
	edgeID     string
}

// buildAdjacency indexes every edge from both endpoints. The reverse entry
// swaps the column pair so direction-agnostic traversal still reports the
// correct columns.
func buildAdjacency(edges []schema.GraphEdge) map[string][]halfEdge {
	adj := make(map[string][]halfEdge)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], halfEdge{
			to:         e.To,
			fromColumn: e.FromColumn,
			toColumn:   e.ToColumn,
			edgeID:     e.ID,
		})
		adj[e.To] = append(adj[e.To], halfEdge{
			to:         e.From,
			fromColumn: e.ToColumn,
			toColumn:   e.FromColumn,
			edgeID:     e.ID,
		})
	}
	return adj
}

// FindAllPaths returns every path from fromID to toID within maxDepth hops,
// shortest first. A non-positive maxDepth falls back to DefaultMaxDepth.
//
// The visited key is (node, path length), not just the node: a node may be
// revisited at a different depth so that distinct paths of different lengths
// are not pruned. That trades traversal speed for completeness within the
// depth cap.
//
// Self-queries and disconnected pairs yield an empty result; deciding what
// to do about "no path" is the caller's job.
func FindAllPaths(nodes []schema.GraphNode, edges []schema.GraphEdge, fromID, toID string, maxDepth int) []Path {
	if fromID == toID {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	if !known[fromID] || !known[toID] {
		return nil
	}

	adj := buildAdjacency(edges)

	type state struct {
		node  string
		steps []Step
	}

	var paths []Path
	visited := make(map[string]bool)
	queue := []state{{node: fromID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if len(cur.steps) >= maxDepth {
			continue
		}

		for _, he := range adj[cur.node] {
			steps := make([]Step, len(cur.steps), len(cur.steps)+1)
			copy(steps, cur.steps)
			steps = append(steps, Step{
				From:       cur.node,
				To:         he.to,
				FromColumn: he.fromColumn,
				ToColumn:   he.toColumn,
				EdgeID:     he.edgeID,
			})

			if he.to == toID {
				paths = append(paths, newPath(steps))
				continue
			}

			key := he.to + "#" + strconv.Itoa(len(steps))
			if visited[key] {
				continue
			}
			visited[key] = true
			queue = append(queue, state{node: he.to, steps: steps})
		}
	}

	// BFS already yields shortest paths first; the explicit sort is a safety
	// net against insertion-order artifacts.
	sort.SliceStable(paths, func(i, j int) bool { return paths[i].Length < paths[j].Length })
	return paths
}

func newPath(steps []Step) Path {
	var intermediates []string
	for i := 0; i < len(steps)-1; i++ {
		intermediates = append(intermediates, steps[i].To)
	}
	return Path{
		Steps:              steps,
		IntermediateTables: intermediates,
		Length:             len(steps),
	}
}

// FindBestPath returns the single shortest path between the two tables, or
// nil when none exists within the tighter depth cap.
func FindBestPath(nodes []schema.GraphNode, edges []schema.GraphEdge, fromID, toID string) *Path {
	paths := FindAllPaths(nodes, edges, fromID, toID, bestPathMaxDepth)
	if len(paths) == 0 {
		return nil
	}
	return &paths[0]
}
