package sqlgen

import "strings"

// Dialect selects the SQL flavor emitted by the generator.
type Dialect string

const (
	// MySQL quotes identifiers with backticks and row-limits with LIMIT.
	MySQL Dialect = "mysql"
	// SQLServer quotes identifiers with brackets and row-limits with TOP.
	SQLServer Dialect = "sqlserver"
)

// Valid reports whether the dialect is one the generator knows.
func (d Dialect) Valid() bool {
	return d == MySQL || d == SQLServer
}

// QuoteIdent escapes a single identifier (table, schema, column or alias)
// for the dialect. Internal quoting characters are doubled, so the original
// identifier is recoverable by the trivial unescape.
func (d Dialect) QuoteIdent(name string) string {
	switch d {
	case SQLServer:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
}

// UnquoteIdent reverses QuoteIdent. Input that is not quoted for the
// dialect is returned unchanged.
func (d Dialect) UnquoteIdent(quoted string) string {
	switch d {
	case SQLServer:
		if len(quoted) >= 2 && quoted[0] == '[' && quoted[len(quoted)-1] == ']' {
			return strings.ReplaceAll(quoted[1:len(quoted)-1], "]]", "]")
		}
	default:
		if len(quoted) >= 2 && quoted[0] == '`' && quoted[len(quoted)-1] == '`' {
			return strings.ReplaceAll(quoted[1:len(quoted)-1], "``", "`")
		}
	}
	return quoted
}

// QuoteQualified escapes a possibly dot-qualified identifier such as
// "schema.table", quoting each segment separately.
func (d Dialect) QuoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdent(p)
	}
	return strings.Join(parts, ".")
}
