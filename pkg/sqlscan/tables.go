package sqlscan

import (
	"regexp"
	"strings"
)

const identPattern = `[A-Za-z_][A-Za-z0-9_$]*`

// tableClauseRe finds FROM and JOIN targets. Any join variant ends in the
// JOIN keyword, so a single alternation covers INNER/LEFT/RIGHT/FULL/CROSS.
var tableClauseRe = regexp.MustCompile(`(?i)\b(?:FROM|JOIN)\s+(` + identPattern + `(?:\.` + identPattern + `)?)`)

// extractTables scans FROM/JOIN clauses, records referenced tables and
// populates the alias map. The scan is flat: subquery interiors are visited
// by the same pass, which is why subquery aliases must be marked before it
// runs. Aliases and comma-separated table lists are read manually after
// each match so a following keyword is never mistaken for an alias.
func (ex *extractor) extractTables(text string) {
	for _, m := range tableClauseRe.FindAllStringSubmatchIndex(text, -1) {
		pos := m[2]
		for iter := 0; iter < maxScanIterations; iter++ {
			full, end := identAt(text, pos)
			if full == "" || isReserved(full) {
				break
			}
			if end < len(text) && text[end] == '.' {
				if part, partEnd := identAt(text, end+1); part != "" {
					full += "." + part
					end = partEnd
				}
			}

			alias, aliasEnd := aliasAfter(text, end)
			ex.addAlias(full, full)
			ex.addAlias(bareName(full), full)
			if alias != "" {
				ex.addAlias(alias, full)
				end = aliasEnd
			}
			ex.addTable(full)

			// FROM a, b c style lists.
			next := skipSpaces(text, end)
			if next >= len(text) || text[next] != ',' {
				break
			}
			pos = next + 1
		}
	}
}

// subqueryOpenRe finds the start of any parenthesized subquery: derived
// tables after FROM/JOIN, IN/EXISTS predicate bodies and scalar SELECT
// expressions all begin the same way.
var subqueryOpenRe = regexp.MustCompile(`(?i)\(\s*(?:SELECT|WITH)\b`)

// markSubqueryAliases records the trailing alias of every parenthesized
// subquery in the exclusion set so a later reference to it is not mistaken
// for a real table. Predicate subqueries carry no alias and contribute
// nothing here; their interior tables are picked up by the flat scans.
// A subquery opening with its own WITH prelude gets its CTE names excluded
// recursively.
func (ex *extractor) markSubqueryAliases(text string, depth int) {
	if depth > maxRecursionDepth {
		return
	}
	for _, loc := range subqueryOpenRe.FindAllStringIndex(text, -1) {
		closing := balancedEnd(text, loc[0])
		if closing < 0 {
			continue
		}
		body := strings.TrimSpace(text[loc[0]+1 : closing])
		if !startsWithSelect(body) {
			ex.extractCTEs(body, depth+1)
		}
		if alias, _ := aliasAfter(text, closing+1); alias != "" {
			ex.exclude[strings.ToLower(alias)] = true
		}
	}
}
