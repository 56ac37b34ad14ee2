// Package sqlgen compiles a query AST into executable SQL text for a
// requested dialect. Generation is a pure function of the AST: no side
// effects, no validation pass. A structurally incomplete AST produces
// incomplete SQL rather than an error; callers validate upstream.
//
// Raw expression fields and custom join conditions are emitted verbatim.
// This is a structural generator, not a sanitizer of free text.
package sqlgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/renatotuller/rt-sql-studio/pkg/query"
)

// Options configures a single generation call.
type Options struct {
	Dialect Dialect
	// Pretty puts each top-level clause on its own line, the way the studio
	// preview pane displays SQL. Nested subqueries always render compact
	// since they are wrapped in parentheses inline.
	Pretty bool
}

// Generate renders the AST as SQL text for the given dialect.
func Generate(ast *query.AST, opts Options) (string, error) {
	if ast == nil {
		return "", errors.New("sqlgen: nil query AST")
	}
	if !opts.Dialect.Valid() {
		return "", fmt.Errorf("sqlgen: unknown dialect %q", opts.Dialect)
	}
	g := &generator{dialect: opts.Dialect}
	return g.render(ast, opts.Pretty), nil
}

type generator struct {
	dialect Dialect
}

func (g *generator) render(ast *query.AST, pretty bool) string {
	sep := " "
	if pretty {
		sep = "\n"
	}

	aliases := ast.Aliases()
	var clauses []string

	if len(ast.CTEs) > 0 {
		clauses = append(clauses, g.renderCTEs(ast.CTEs))
	}
	clauses = append(clauses, g.renderSelect(ast, aliases))
	clauses = append(clauses, g.renderFrom(ast.From))
	clauses = append(clauses, g.renderJoins(ast.Joins)...)
	if len(ast.Where.Conditions) > 0 {
		clauses = append(clauses, g.renderWhere(ast.Where, aliases))
	}
	if len(ast.GroupBy.Fields) > 0 {
		clauses = append(clauses, g.renderGroupBy(ast.GroupBy, aliases))
	}
	if len(ast.OrderBy.Fields) > 0 {
		clauses = append(clauses, g.renderOrderBy(ast.OrderBy, aliases))
	}
	if ast.Limit != nil && g.dialect == MySQL {
		clauses = append(clauses, g.renderLimit(ast.Limit))
	}
	for _, u := range ast.SortedUnions() {
		if u.Query == nil {
			continue
		}
		kind := u.Type
		if kind == "" {
			kind = query.Union
		}
		clauses = append(clauses, string(kind)+" "+g.render(u.Query, false))
	}

	return strings.Join(clauses, sep)
}

// renderCTEs emits WITH [RECURSIVE] name (cols) AS (query), ... ahead of the
// main statement. The recursive flag is a per-CTE marker and is not checked
// against an actual self-reference.
func (g *generator) renderCTEs(ctes []query.CTE) string {
	parts := make([]string, 0, len(ctes))
	for _, cte := range ctes {
		var b strings.Builder
		if cte.Recursive {
			b.WriteString("RECURSIVE ")
		}
		b.WriteString(g.dialect.QuoteIdent(cte.Name))
		if len(cte.Columns) > 0 {
			cols := make([]string, len(cte.Columns))
			for i, c := range cte.Columns {
				cols[i] = g.dialect.QuoteIdent(c)
			}
			b.WriteString(" (" + strings.Join(cols, ", ") + ")")
		}
		b.WriteString(" AS (")
		if cte.Query != nil {
			b.WriteString(g.render(cte.Query, false))
		}
		b.WriteString(")")
		parts = append(parts, b.String())
	}
	return "WITH " + strings.Join(parts, ", ")
}

func (g *generator) renderSelect(ast *query.AST, aliases map[string]string) string {
	var b strings.Builder
	b.WriteString("SELECT ")

	// SQL Server expresses row limiting inside the SELECT clause.
	if ast.Limit != nil && g.dialect == SQLServer {
		b.WriteString("TOP " + strconv.Itoa(ast.Limit.Limit) + " ")
	}

	fields := ast.Select.Sorted()
	if len(fields) == 0 {
		b.WriteString("*")
		return b.String()
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, g.renderSelectField(f, aliases))
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}

func (g *generator) renderSelectField(f query.SelectField, aliases map[string]string) string {
	var expr string
	switch {
	case f.Expression != "":
		expr = f.Expression
	case f.TableID == "":
		expr = g.quoteColumn("", f.Column)
	default:
		expr = g.quoteColumn(query.AliasFor(aliases, f.TableID), f.Column)
	}
	if f.AggregateFunction != "" && f.Expression == "" {
		expr = strings.ToUpper(f.AggregateFunction) + "(" + expr + ")"
	}
	if f.Alias != "" {
		expr += " AS " + g.dialect.QuoteIdent(f.Alias)
	}
	return expr
}

func (g *generator) renderFrom(from query.From) string {
	if from.Subquery != nil {
		sub := g.render(from.Subquery, false)
		out := "FROM (" + sub + ")"
		if from.Alias != "" {
			out += " AS " + g.dialect.QuoteIdent(from.Alias)
		}
		return out
	}

	name := from.Table
	if from.Schema != "" && !strings.Contains(name, ".") {
		name = from.Schema + "." + name
	}
	out := "FROM " + g.dialect.QuoteQualified(name)
	if from.Alias != "" {
		out += " AS " + g.dialect.QuoteIdent(from.Alias)
	}
	return out
}

// renderJoins consolidates joins sharing a (source, target) table pair into
// a single JOIN whose conditions combine via AND in encounter order. The key
// is id-based, not alias-based, so repeated calls are order-independent.
func (g *generator) renderJoins(joins []query.Join) []string {
	type group struct {
		first      query.Join
		conditions []string
	}

	var order []string
	groups := make(map[string]*group)

	for _, j := range joins {
		key := j.SourceTableID + "\x00" + j.TargetTableID
		grp, ok := groups[key]
		if !ok {
			grp = &group{first: j}
			groups[key] = grp
			order = append(order, key)
		}
		grp.conditions = append(grp.conditions, g.joinCondition(j))
	}

	out := make([]string, 0, len(order))
	for _, key := range order {
		grp := groups[key]
		out = append(out, g.renderJoinGroup(grp.first, grp.conditions))
	}
	return out
}

func (g *generator) renderJoinGroup(first query.Join, conditions []string) string {
	kind := first.Type
	if kind == "" {
		kind = query.JoinInner
	}

	var target string
	if first.TargetSubquery != nil {
		alias := first.TargetSubqueryAlias
		if alias == "" {
			alias = first.TargetAlias
		}
		target = "(" + g.render(first.TargetSubquery, false) + ") AS " + g.dialect.QuoteIdent(alias)
	} else {
		target = g.dialect.QuoteQualified(first.TargetTableID)
		if first.TargetAlias != "" {
			target += " AS " + g.dialect.QuoteIdent(first.TargetAlias)
		}
	}

	return string(kind) + " JOIN " + target + " ON " + strings.Join(conditions, " AND ")
}

// joinCondition renders the equality for one join entry. A custom condition
// fully overrides the implied column pair.
func (g *generator) joinCondition(j query.Join) string {
	if j.CustomCondition != "" {
		return j.CustomCondition
	}
	left := g.quoteColumn(j.SourceAlias, j.SourceColumn)
	right := g.quoteColumn(j.TargetAlias, j.TargetColumn)
	return left + " = " + right
}

func (g *generator) renderWhere(where query.WhereClause, aliases map[string]string) string {
	var b strings.Builder
	b.WriteString("WHERE ")
	for i, cond := range where.Sorted() {
		if i > 0 {
			op := cond.LogicalOperator
			if op == "" {
				op = query.And
			}
			b.WriteString(" " + string(op) + " ")
		}
		b.WriteString(g.renderCondition(cond, aliases))
	}
	return b.String()
}

func (g *generator) renderCondition(cond query.WhereCondition, aliases map[string]string) string {
	op := strings.ToUpper(strings.TrimSpace(cond.Operator))
	lhs := g.quoteColumn(query.AliasFor(aliases, cond.TableID), cond.Column)

	switch op {
	case "IS NULL", "IS NOT NULL":
		return lhs + " " + op

	case "BETWEEN", "NOT BETWEEN":
		lo, hi := valuePair(cond.Value)
		return lhs + " " + op + " " + lo + " AND " + hi

	case "IN", "NOT IN":
		if cond.Subquery != nil {
			return lhs + " " + op + " (" + g.render(cond.Subquery, false) + ")"
		}
		rhs := formatValue(cond.Value)
		if !strings.HasPrefix(rhs, "(") {
			rhs = "(" + rhs + ")"
		}
		return lhs + " " + op + " " + rhs

	case "EXISTS", "NOT EXISTS":
		// Column and table are irrelevant for EXISTS.
		if cond.Subquery != nil {
			return op + " (" + g.render(cond.Subquery, false) + ")"
		}
		return op + " (" + fmt.Sprintf("%v", cond.Value) + ")"

	default:
		if cond.Subquery != nil {
			return lhs + " " + op + " (" + g.render(cond.Subquery, false) + ")"
		}
		return lhs + " " + op + " " + formatValue(cond.Value)
	}
}

func (g *generator) renderGroupBy(groupBy query.GroupByClause, aliases map[string]string) string {
	parts := make([]string, 0, len(groupBy.Fields))
	for _, f := range groupBy.Sorted() {
		if f.Alias != "" {
			parts = append(parts, g.dialect.QuoteIdent(f.Alias))
			continue
		}
		parts = append(parts, g.quoteColumn(query.AliasFor(aliases, f.TableID), f.Column))
	}
	return "GROUP BY " + strings.Join(parts, ", ")
}

func (g *generator) renderOrderBy(orderBy query.OrderByClause, aliases map[string]string) string {
	parts := make([]string, 0, len(orderBy.Fields))
	for _, f := range orderBy.Sorted() {
		dir := f.Direction
		if dir == "" {
			dir = query.Ascending
		}
		parts = append(parts, g.quoteColumn(query.AliasFor(aliases, f.TableID), f.Column)+" "+string(dir))
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

func (g *generator) renderLimit(limit *query.Limit) string {
	out := "LIMIT " + strconv.Itoa(limit.Limit)
	if limit.Offset > 0 {
		out += " OFFSET " + strconv.Itoa(limit.Offset)
	}
	return out
}

// quoteColumn renders alias.column with the star left unquoted. An empty
// alias drops the qualification.
func (g *generator) quoteColumn(alias, column string) string {
	var col string
	if column == "*" {
		col = "*"
	} else {
		col = g.dialect.QuoteIdent(column)
	}
	if alias == "" {
		return col
	}
	return g.dialect.QuoteIdent(alias) + "." + col
}
