package sqlscan

import "strings"

// extractCTEs handles a leading WITH clause: each CTE name is recorded in
// the exclusion set, each body is analyzed recursively, and the remaining
// main query text is returned. Text without a WITH prelude passes through
// untouched, as does anything malformed enough to lose track of.
func (ex *extractor) extractCTEs(text string, depth int) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 5 || !strings.EqualFold(trimmed[:5], "WITH ") {
		return text
	}

	pos := 5
	if word, end := identAt(trimmed, pos); strings.EqualFold(word, "RECURSIVE") {
		pos = end
	}

	for iter := 0; iter < maxScanIterations; iter++ {
		name, end := identAt(trimmed, pos)
		if name == "" {
			return trimmed[pos:]
		}
		pos = skipSpaces(trimmed, end)

		// Optional column list: name (a, b) AS (...)
		if pos < len(trimmed) && trimmed[pos] == '(' {
			next := skipSpaces(trimmed, pos+1)
			if !startsWithSelect(trimmed[next:]) {
				closeCols := balancedEnd(trimmed, pos)
				if closeCols < 0 {
					return trimmed[pos:]
				}
				pos = skipSpaces(trimmed, closeCols+1)
			}
		}

		if word, end := identAt(trimmed, pos); strings.EqualFold(word, "AS") {
			pos = skipSpaces(trimmed, end)
		}
		if pos >= len(trimmed) || trimmed[pos] != '(' {
			return trimmed[pos:]
		}
		closeBody := balancedEnd(trimmed, pos)
		if closeBody < 0 {
			return trimmed[pos:]
		}

		ex.exclude[strings.ToLower(name)] = true
		ex.extract(trimmed[pos+1:closeBody], depth+1)

		pos = skipSpaces(trimmed, closeBody+1)
		if pos < len(trimmed) && trimmed[pos] == ',' {
			pos = skipSpaces(trimmed, pos+1)
			continue
		}
		return trimmed[pos:]
	}
	return trimmed[pos:]
}
