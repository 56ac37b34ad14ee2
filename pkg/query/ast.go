// Package query defines the structured query document built by the visual
// query builder. The AST nests recursively: CTEs, unions, derived tables and
// predicate subqueries all embed a full AST.
//
// The builder mutates the AST incrementally; the SQL generator and the
// analyzer comparison logic only ever read it.
package query

import (
	"sort"
	"strings"
)

// JoinKind is the SQL join variant of a Join entry.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinFull  JoinKind = "FULL"
)

// UnionKind distinguishes UNION from UNION ALL.
type UnionKind string

const (
	Union    UnionKind = "UNION"
	UnionAll UnionKind = "UNION ALL"
)

// SortDirection orders an ORDER BY field.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// LogicalOperator chains WHERE conditions.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

// AST is the root query document.
type AST struct {
	From    From          `json:"from"`
	Select  SelectClause  `json:"select"`
	Joins   []Join        `json:"joins,omitempty"`
	Where   WhereClause   `json:"where"`
	GroupBy GroupByClause `json:"groupBy"`
	OrderBy OrderByClause `json:"orderBy"`
	CTEs    []CTE         `json:"ctes,omitempty"`
	Unions  []UnionClause `json:"unions,omitempty"`
	Limit   *Limit        `json:"limit,omitempty"`
}

// From is the primary relation. Exactly one of Table or Subquery is set;
// the generator does not validate that and degrades on a violation.
type From struct {
	Table    string `json:"table,omitempty"`
	Schema   string `json:"schema,omitempty"`
	Alias    string `json:"alias"`
	Subquery *AST   `json:"subquery,omitempty"`
}

// SelectClause holds the projected fields. An empty field list renders as *.
type SelectClause struct {
	Fields []SelectField `json:"fields"`
}

// SelectField is one projected column or expression. Order defines the
// serialization position regardless of slice order.
type SelectField struct {
	TableID           string `json:"tableId"`
	Column            string `json:"column"`
	Alias             string `json:"alias,omitempty"`
	AggregateFunction string `json:"aggregateFunction,omitempty"`
	Expression        string `json:"expression,omitempty"`
	Order             int    `json:"order"`
}

// Join connects the query to another table or derived table.
// TargetAlias must be unique within the AST. CustomCondition, when present,
// fully replaces the single-column equality implied by the column pair.
type Join struct {
	ID                  string   `json:"id"`
	Type                JoinKind `json:"type"`
	SourceTableID       string   `json:"sourceTableId"`
	SourceAlias         string   `json:"sourceAlias"`
	SourceColumn        string   `json:"sourceColumn"`
	TargetTableID       string   `json:"targetTableId"`
	TargetAlias         string   `json:"targetAlias"`
	TargetColumn        string   `json:"targetColumn"`
	CustomCondition     string   `json:"customCondition,omitempty"`
	TargetSubquery      *AST     `json:"targetSubquery,omitempty"`
	TargetSubqueryAlias string   `json:"targetSubqueryAlias,omitempty"`
}

// WhereClause holds the filter conditions.
type WhereClause struct {
	Conditions []WhereCondition `json:"conditions"`
}

// WhereCondition is a single predicate. The first condition's
// LogicalOperator is ignored; there is nothing to chain it to.
type WhereCondition struct {
	TableID         string          `json:"tableId"`
	Column          string          `json:"column"`
	Operator        string          `json:"operator"`
	Value           any             `json:"value,omitempty"`
	Subquery        *AST            `json:"subquery,omitempty"`
	LogicalOperator LogicalOperator `json:"logicalOperator,omitempty"`
	Order           int             `json:"order"`
}

// GroupByClause holds the grouping fields.
type GroupByClause struct {
	Fields []GroupByField `json:"fields"`
}

// GroupByField groups by a column, or by a projection alias when Alias is set.
type GroupByField struct {
	TableID string `json:"tableId"`
	Column  string `json:"column"`
	Alias   string `json:"alias,omitempty"`
	Order   int    `json:"order"`
}

// OrderByClause holds the sort fields.
type OrderByClause struct {
	Fields []OrderByField `json:"fields"`
}

// OrderByField sorts by a column in the given direction (ASC when empty).
type OrderByField struct {
	TableID   string        `json:"tableId"`
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction,omitempty"`
	Order     int           `json:"order"`
}

// CTE is a common table expression preceding the main query. Recursive is a
// per-CTE marker; it is not validated against an actual self-reference.
type CTE struct {
	Name      string   `json:"name"`
	Recursive bool     `json:"recursive,omitempty"`
	Columns   []string `json:"columns,omitempty"`
	Query     *AST     `json:"query"`
}

// UnionClause appends another full query via UNION or UNION ALL.
type UnionClause struct {
	ID    string    `json:"id"`
	Type  UnionKind `json:"type"`
	Query *AST      `json:"query"`
	Order int       `json:"order"`
}

// Limit caps the result set. Offset is only meaningful when positive.
type Limit struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset,omitempty"`
}

// Sorted returns the fields ordered by their Order attribute. The receiver
// is not modified.
func (s SelectClause) Sorted() []SelectField {
	out := make([]SelectField, len(s.Fields))
	copy(out, s.Fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Sorted returns the conditions ordered by their Order attribute.
func (w WhereClause) Sorted() []WhereCondition {
	out := make([]WhereCondition, len(w.Conditions))
	copy(out, w.Conditions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Sorted returns the fields ordered by their Order attribute.
func (g GroupByClause) Sorted() []GroupByField {
	out := make([]GroupByField, len(g.Fields))
	copy(out, g.Fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Sorted returns the fields ordered by their Order attribute.
func (o OrderByClause) Sorted() []OrderByField {
	out := make([]OrderByField, len(o.Fields))
	copy(out, o.Fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// SortedUnions returns the union clauses ordered by their Order attribute.
func (a *AST) SortedUnions() []UnionClause {
	out := make([]UnionClause, len(a.Unions))
	copy(out, a.Unions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Aliases builds the tableId -> alias lookup from the FROM clause and every
// join. Later joins win on a duplicate table id, matching builder behavior
// where the most recently wired join owns the alias.
func (a *AST) Aliases() map[string]string {
	aliases := make(map[string]string, len(a.Joins)+1)
	if a.From.Table != "" && a.From.Alias != "" {
		aliases[a.From.Table] = a.From.Alias
	}
	for _, j := range a.Joins {
		if j.SourceTableID != "" && j.SourceAlias != "" {
			aliases[j.SourceTableID] = j.SourceAlias
		}
		if j.TargetSubquery != nil {
			if j.TargetSubqueryAlias != "" {
				aliases[j.TargetTableID] = j.TargetSubqueryAlias
			}
			continue
		}
		if j.TargetTableID != "" && j.TargetAlias != "" {
			aliases[j.TargetTableID] = j.TargetAlias
		}
	}
	return aliases
}

// AliasFor resolves a table id through the alias map, falling back to the
// raw id when the table was never aliased. The fallback is deliberate
// degradation, not an error.
func AliasFor(aliases map[string]string, tableID string) string {
	if alias, ok := aliases[tableID]; ok && alias != "" {
		return alias
	}
	return tableID
}

// BareName returns the trailing segment of a possibly qualified identifier,
// e.g. "public.orders" -> "orders".
func BareName(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}
