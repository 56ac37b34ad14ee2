package sqlscan

import "regexp"

var (
	onKeywordRe = regexp.MustCompile(`(?i)\bON\b`)
	// onTerminatorRe marks where an ON clause body ends: the next join,
	// clause keyword, or closing parenthesis.
	onTerminatorRe = regexp.MustCompile(`(?i)\b(?:INNER|LEFT|RIGHT|FULL|CROSS|JOIN|WHERE|GROUP|ORDER|HAVING|LIMIT|OFFSET|UNION)\b|\)`)
	// conditionSplitRe separates multi-condition ON bodies.
	conditionSplitRe = regexp.MustCompile(`(?i)\s+(?:AND|OR)\s+`)
	// equalityRe captures table1.col1 = table2.col2 pairs. Either side may
	// carry a schema qualifier.
	equalityRe = regexp.MustCompile(`((?:` + identPattern + `\.)?` + identPattern + `)\.(` + identPattern + `)\s*=\s*((?:` + identPattern + `\.)?` + identPattern + `)\.(` + identPattern + `)`)
)

// extractJoins scans every ON clause body, splits multi-condition clauses on
// AND/OR and records the column equalities as logical relationships, with
// both sides resolved through the alias map.
func (ex *extractor) extractJoins(text string) {
	for _, loc := range onKeywordRe.FindAllStringIndex(text, -1) {
		body := text[loc[1]:]
		if term := onTerminatorRe.FindStringIndex(body); term != nil {
			body = body[:term[0]]
		}

		for _, cond := range conditionSplitRe.Split(body, -1) {
			m := equalityRe.FindStringSubmatch(cond)
			if m == nil {
				continue
			}
			from := ex.resolveAlias(m[1])
			to := ex.resolveAlias(m[3])
			condition := from + "." + m[2] + " = " + to + "." + m[4]
			ex.addJoin(from, to, condition)
		}
	}
}
