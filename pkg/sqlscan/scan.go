package sqlscan

import (
	"regexp"
	"strings"
)

var (
	lineCommentRe  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// stripComments removes line and block comments. Comment markers inside
// string literals are a known precision loss of the lexical approach.
func stripComments(sql string) string {
	sql = blockCommentRe.ReplaceAllString(sql, " ")
	return lineCommentRe.ReplaceAllString(sql, " ")
}

func normalizeWhitespace(sql string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(sql, " "))
}

// reservedWords are tokens that must never be mistaken for a table alias.
var reservedWords = map[string]bool{
	"AS": true, "ON": true, "WHERE": true, "GROUP": true, "ORDER": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"CROSS": true, "OUTER": true, "NATURAL": true, "USING": true,
	"SELECT": true, "FROM": true, "SET": true, "VALUES": true, "AND": true,
	"OR": true, "NOT": true, "EXISTS": true, "IN": true, "BETWEEN": true,
	"FETCH": true, "TOP": true, "WITH": true,
}

func isReserved(word string) bool {
	return reservedWords[strings.ToUpper(word)]
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '$' || (c >= '0' && c <= '9')
}

// identAt reads an identifier starting at pos, returning it and the index
// just past its end. Returns "" when pos is not at an identifier.
func identAt(text string, pos int) (string, int) {
	i := skipSpaces(text, pos)
	if i >= len(text) || !isIdentStart(text[i]) {
		return "", pos
	}
	start := i
	for i < len(text) && isIdentPart(text[i]) {
		i++
	}
	return text[start:i], i
}

// aliasAfter reads an optional "[AS] ident" alias at pos. A reserved word is
// not an alias; after an explicit AS any identifier counts.
func aliasAfter(text string, pos int) (string, int) {
	word, end := identAt(text, pos)
	if word == "" {
		return "", pos
	}
	if strings.EqualFold(word, "AS") {
		alias, aliasEnd := identAt(text, end)
		if alias == "" {
			return "", pos
		}
		return alias, aliasEnd
	}
	if isReserved(word) {
		return "", pos
	}
	return word, end
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t' || text[pos] == '\n') {
		pos++
	}
	return pos
}

// balancedEnd returns the index of the parenthesis closing the one at open,
// or -1 when the text is unbalanced.
func balancedEnd(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// startsWithSelect reports whether the text begins with SELECT after
// optional whitespace.
func startsWithSelect(text string) bool {
	i := skipSpaces(text, 0)
	return len(text)-i >= 6 && strings.EqualFold(text[i:i+6], "SELECT")
}
