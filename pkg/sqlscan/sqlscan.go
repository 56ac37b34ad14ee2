// Package sqlscan extracts referenced tables, join relationships and aliases
// from raw SQL text so the studio can highlight the matching subgraph when a
// user pastes a hand-written query.
//
// This is deliberately a heuristic lexical scanner, not a grammar-based
// parser: it tolerates real-world SQL variety and degrades to a partial
// result rather than failing the whole call. Coverage improves
// monotonically; completeness is not a goal.
package sqlscan

import "strings"

// MaxInputBytes is the input-size ceiling. Larger inputs yield an empty
// result rather than risking pathological scan times.
const MaxInputBytes = 1 << 20

// maxRecursionDepth caps subquery/CTE nesting during extraction.
const maxRecursionDepth = 20

// maxScanIterations caps repeated pattern passes over a single text.
const maxScanIterations = 2000

// Join is one inferred relationship between two referenced tables.
// From/To are fully qualified via the alias map where possible.
type Join struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Condition string `json:"condition,omitempty"`
}

// Result is the analyzer output. Tables is deduplicated in first-seen order
// with CTE names and subquery aliases excluded. Aliases maps every alias
// (and bare table name) to its fully qualified table.
type Result struct {
	Tables  []string          `json:"tables"`
	Joins   []Join            `json:"joins"`
	Aliases map[string]string `json:"aliases"`
}

// Analyze performs best-effort extraction over the SQL text. It never
// returns an error: unparseable fragments simply contribute nothing.
func Analyze(sql string) Result {
	ex := newExtractor()
	if len(sql) > MaxInputBytes {
		return ex.result()
	}

	text := normalizeWhitespace(stripComments(sql))
	ex.extract(text, 0)
	return ex.result()
}

// extractor accumulates findings across recursive passes. All lookup keys
// are lowercased; recorded names keep their original spelling.
type extractor struct {
	tables   []string
	tableSet map[string]bool
	aliases  map[string]string
	joins    []Join
	joinSet  map[string]bool
	// exclude holds CTE names and subquery aliases so they are not
	// mistaken for real tables.
	exclude map[string]bool
}

func newExtractor() *extractor {
	return &extractor{
		tableSet: make(map[string]bool),
		aliases:  make(map[string]string),
		joinSet:  make(map[string]bool),
		exclude:  make(map[string]bool),
	}
}

// extract runs the full pass set over one query text: CTE prelude, subquery
// alias marking, then flat table and join-condition scans over what remains.
func (ex *extractor) extract(text string, depth int) {
	if depth > maxRecursionDepth {
		return
	}
	text = ex.extractCTEs(text, depth)
	ex.markSubqueryAliases(text, depth)
	ex.extractTables(text)
	ex.extractJoins(text)
}

func (ex *extractor) result() Result {
	return Result{
		Tables:  ex.tables,
		Joins:   ex.joins,
		Aliases: ex.aliases,
	}
}

// addTable records a referenced table unless its name is a known CTE or
// subquery alias.
func (ex *extractor) addTable(name string) {
	key := strings.ToLower(name)
	if ex.exclude[key] || ex.exclude[strings.ToLower(bareName(name))] {
		return
	}
	if ex.tableSet[key] {
		return
	}
	ex.tableSet[key] = true
	ex.tables = append(ex.tables, name)
}

// addAlias registers alias -> fully qualified table. The bare table name and
// the full name self-map so unaliased references still resolve.
func (ex *extractor) addAlias(alias, full string) {
	if alias == "" {
		return
	}
	ex.aliases[strings.ToLower(alias)] = full
}

// resolveAlias maps an identifier through the alias table, returning the
// input unchanged when unknown.
func (ex *extractor) resolveAlias(name string) string {
	if full, ok := ex.aliases[strings.ToLower(name)]; ok {
		return full
	}
	return name
}

// addJoin records a deduplicated relationship; a pair already present in
// either direction is not re-added.
func (ex *extractor) addJoin(from, to, condition string) {
	a, b := strings.ToLower(from), strings.ToLower(to)
	if b < a {
		a, b = b, a
	}
	key := a + "|" + b
	if ex.joinSet[key] {
		return
	}
	ex.joinSet[key] = true
	ex.joins = append(ex.joins, Join{From: from, To: to, Condition: condition})
}

func bareName(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}
