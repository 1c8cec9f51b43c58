package rdf

import "strings"

// DetectSyntax guesses the syntax of a document from a sample of its first
// bytes, using cheap structural heuristics. Detection cannot be exact: every
// NTriples document is also valid Turtle, so the line-based syntaxes are
// only reported when nothing abbreviated appears in the sample.
func DetectSyntax(sample []byte) (Syntax, bool) {
	text := strings.TrimSpace(string(sample))
	if text == "" {
		return "", false
	}

	upper := strings.ToUpper(text)
	graphs := strings.Contains(text, "{") || hasKeyword(upper, "GRAPH")

	// Directives only exist in the abbreviating syntaxes
	if strings.HasPrefix(text, "@prefix") || strings.HasPrefix(text, "@base") ||
		strings.HasPrefix(upper, "PREFIX") || strings.HasPrefix(upper, "BASE") {
		if graphs {
			return TriG, true
		}
		return Turtle, true
	}

	if graphs {
		return TriG, true
	}

	// Distinguish the line-based syntaxes by term count when every line
	// looks non-abbreviated, otherwise assume Turtle.
	lineBased := true
	quads := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms, plain := countPlainTerms(line)
		if !plain {
			lineBased = false
			break
		}
		if terms > 3 {
			quads = true
		}
	}

	if !lineBased {
		return Turtle, true
	}
	if quads {
		return NQuads, true
	}
	return NTriples, true
}

func hasKeyword(upper, word string) bool {
	i := strings.Index(upper, word)
	if i < 0 {
		return false
	}
	before := i == 0 || upper[i-1] == ' ' || upper[i-1] == '\t' || upper[i-1] == '\n'
	after := i+len(word) >= len(upper) || upper[i+len(word)] == ' '
	return before && after
}

// countPlainTerms counts whitespace-separated terms on one line, reporting
// false if the line uses anything beyond the line-based grammars.
func countPlainTerms(line string) (int, bool) {
	terms := 0
	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '<':
			end := strings.IndexByte(line[i:], '>')
			if end < 0 {
				return terms, false
			}
			terms++
			i += end + 1
		case c == '_':
			terms++
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
		case c == '"':
			end := closingQuote(line[i+1:])
			if end < 0 {
				return terms, false
			}
			terms++
			i += end + 2
			// Take any language tag or datatype with the literal
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
		case c == '.':
			return terms, i == len(line)-1 || strings.TrimSpace(line[i+1:]) == "" ||
				strings.HasPrefix(strings.TrimSpace(line[i+1:]), "#")
		case c == '#':
			return terms, true
		default:
			return terms, false
		}
	}
	return terms, true
}

func closingQuote(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
