// Package schema defines the read-only schema graph consumed by the query
// intelligence engine: tables and views as nodes, foreign-key style
// relationships as edges. The graph is produced by the introspection backend
// and never mutated here.
package schema

import "encoding/json"

// NodeType classifies a graph node.
type NodeType string

const (
	// NodeTypeTable is a physical table.
	NodeTypeTable NodeType = "table"
	// NodeTypeView is a database view.
	NodeTypeView NodeType = "view"
)

// Column describes a single column of a table or view.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Nullable     bool   `json:"nullable"`
	IsPrimaryKey bool   `json:"isPrimaryKey"`
	IsForeignKey bool   `json:"isForeignKey"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// GraphNode represents a table or view in the schema graph.
// The ID is the canonical identifier, usually "schema.table".
type GraphNode struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    NodeType `json:"type"`
	Schema  string   `json:"schema,omitempty"`
	Columns []Column `json:"columns"`
}

// GraphEdge is a directed relationship between two nodes, typically a
// foreign key. Traversal treats edges as bidirectional; the From/To
// orientation stays meaningful for column semantics.
//
// Edges referencing unknown nodes or columns are tolerated: they degrade
// match quality but must never crash a consumer.
type GraphEdge struct {
	ID         string `json:"id"`
	From       string `json:"from"`
	To         string `json:"to"`
	FromColumn string `json:"fromColumn"`
	ToColumn   string `json:"toColumn"`
	Label      string `json:"label,omitempty"`
}

// Graph is the wire document served by the backend's graph endpoint.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Load decodes a schema graph from its JSON wire form.
func Load(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	return g.NodeByID(id) != nil
}

// NodeIDs returns the ids of all nodes in declaration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i := range g.Nodes {
		ids[i] = g.Nodes[i].ID
	}
	return ids
}

// EdgesBetween returns every edge connecting a and b, in either direction.
func (g *Graph) EdgesBetween(a, b string) []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			out = append(out, e)
		}
	}
	return out
}

// HasColumn reports whether the node declares a column with the given name.
func (n *GraphNode) HasColumn(name string) bool {
	for _, c := range n.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DisplayName returns the label if set, otherwise the id.
func (n *GraphNode) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}
