// Package tokenizer normalizes raw transaction text into a bounded ordered
// sequence of lexical tokens.
package tokenizer

import "strings"

// MaxTokens caps the number of tokens returned for any input.
const MaxTokens = 10

// stopwords is the small fixed set of articles, prepositions, and common
// auxiliary verbs dropped during tokenization. Tokens of length <=2 are
// already dropped by the length filter, so only longer words appear here.
var stopwords = map[string]struct{}{
	"the":  {},
	"and":  {},
	"for":  {},
	"with": {},
	"from": {},
	"into": {},
	"onto": {},
	"was":  {},
	"were": {},
	"are":  {},
	"has":  {},
	"have": {},
	"had":  {},
	"been": {},
	"will": {},
	"this": {},
	"that": {},
	"but":  {},
	"not":  {},
	"per":  {},
	"via":  {},
}

// Tokenize normalizes text into at most MaxTokens tokens, preserving order:
// lowercase, strip everything outside [a-z0-9] to spaces, split on
// whitespace, collapse runs of 3+ identical characters to 2, drop tokens of
// length <=2, drop stopwords. Pure function, deterministic.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	lowered := strings.ToLower(text)

	var cleaned strings.Builder
	cleaned.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			cleaned.WriteRune(r)
		} else {
			cleaned.WriteByte(' ')
		}
	}

	var tokens []string
	for _, raw := range strings.Fields(cleaned.String()) {
		token := collapseRuns(raw)
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
		if len(tokens) == MaxTokens {
			break
		}
	}
	return tokens
}

// collapseRuns shortens any run of 3 or more identical characters to 2,
// normalizing elongated spellings ("soooo" -> "soo").
func collapseRuns(s string) string {
	if len(s) < 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	runLen := 0
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i > 0 && c == prev {
			runLen++
		} else {
			runLen = 1
			prev = c
		}
		if runLen <= 2 {
			b.WriteByte(c)
		}
	}
	return b.String()
}
