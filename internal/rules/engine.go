package rules

import "fmt"

// Match scores.
const (
	exactScore = 1.0
	fuzzyScore = 0.85
)

// Match is the result of running the rule engine over a token sequence.
// Category is empty when nothing matched.
type Match struct {
	Category string
	Trace    []string
	Score    float64
}

// Matched reports whether the rule engine found a category.
func (m Match) Matched() bool {
	return m.Category != ""
}

// Engine matches token sequences against a static lexicon. The lexicon is
// loaded once at process start and shared by reference; Engine holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	lexicon Lexicon
}

// NewEngine creates a rule engine over the given lexicon.
func NewEngine(lexicon Lexicon) *Engine {
	return &Engine{lexicon: lexicon}
}

// Match runs two full passes over the lexicon: an exact pass, then a fuzzy
// pass. Exact matches always win over fuzzy matches system-wide, so the
// passes are never interleaved. Within a pass, categories are visited in
// lexicon-declaration order, keywords in declaration order, and tokens in
// tokenizer order; the first hit returns immediately.
func (e *Engine) Match(tokens []string) Match {
	if len(tokens) == 0 {
		return Match{}
	}

	for _, category := range e.lexicon.categories {
		for _, keyword := range e.lexicon.keywords[category] {
			for _, token := range tokens {
				if token == keyword {
					return Match{
						Category: category,
						Score:    exactScore,
						Trace:    []string{fmt.Sprintf("exact: %s -> %s", token, category)},
					}
				}
			}
		}
	}

	for _, category := range e.lexicon.categories {
		for _, keyword := range e.lexicon.keywords[category] {
			limit := fuzzyLimit(keyword)
			for _, token := range tokens {
				if editDistance(token, keyword) <= limit {
					return Match{
						Category: category,
						Score:    fuzzyScore,
						Trace:    []string{fmt.Sprintf("fuzzy: %s~%s -> %s", token, keyword, category)},
					}
				}
			}
		}
	}

	return Match{}
}

// fuzzyLimit returns the edit-distance tolerance for a keyword: 1 for short
// keywords, 2 for keywords longer than six characters.
func fuzzyLimit(keyword string) int {
	if len(keyword) <= 6 {
		return 1
	}
	return 2
}

// editDistance computes the Levenshtein distance between two strings with
// unit costs for insert, delete, and substitute, using the standard
// dynamic-programming recurrence over a rolling pair of rows.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
