// Package rules implements deterministic keyword matching of tokens against
// a static per-category lexicon, with an exact pass and a fuzzy fallback.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spendsense/spendsense/internal/common"
)

// Lexicon is an immutable ordered mapping of category -> keyword list.
// Declaration order matters: the rule engine iterates categories and
// keywords in the order they were defined, so ties resolve deterministically.
type Lexicon struct {
	keywords   map[string][]string
	categories []string
}

// NewLexicon builds a lexicon from ordered (category, keywords) entries.
// Keywords are lowercased; empty categories and keywords are rejected.
func NewLexicon(entries []LexiconEntry) (Lexicon, error) {
	lex := Lexicon{keywords: make(map[string][]string, len(entries))}
	for _, entry := range entries {
		category := strings.TrimSpace(entry.Category)
		if category == "" {
			return Lexicon{}, fmt.Errorf("%w: empty category name", common.ErrInvalidLexicon)
		}
		if _, dup := lex.keywords[category]; dup {
			return Lexicon{}, fmt.Errorf("%w: duplicate category %q", common.ErrInvalidLexicon, category)
		}
		if len(entry.Keywords) == 0 {
			return Lexicon{}, fmt.Errorf("%w: category %q has no keywords", common.ErrInvalidLexicon, category)
		}
		words := make([]string, 0, len(entry.Keywords))
		for _, kw := range entry.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return Lexicon{}, fmt.Errorf("%w: category %q has an empty keyword", common.ErrInvalidLexicon, category)
			}
			if strings.ContainsRune(kw, ' ') {
				return Lexicon{}, fmt.Errorf("%w: keyword %q must be a single word", common.ErrInvalidLexicon, kw)
			}
			words = append(words, kw)
		}
		lex.categories = append(lex.categories, category)
		lex.keywords[category] = words
	}
	return lex, nil
}

// LexiconEntry is one ordered category definition.
type LexiconEntry struct {
	Category string
	Keywords []string
}

// Categories returns the category names in declaration order.
func (l Lexicon) Categories() []string {
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// Keywords returns the keyword list for a category, in declaration order.
func (l Lexicon) Keywords(category string) []string {
	return l.keywords[category]
}

// LoadLexicon reads a lexicon from a YAML file of the form:
//
//	food: [zomato, swiggy]
//	transport: [uber, lyft]
//
// The yaml.Node API is used instead of plain map decoding because mapping
// order in the file defines rule-engine iteration order, and Go maps would
// destroy it.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return Lexicon{}, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Lexicon{}, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if len(doc.Content) == 0 {
		return Lexicon{}, fmt.Errorf("%w: empty lexicon file %s", common.ErrInvalidLexicon, path)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Lexicon{}, fmt.Errorf("%w: lexicon root must be a mapping", common.ErrInvalidLexicon)
	}

	entries := make([]LexiconEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		var keywords []string
		if err := valNode.Decode(&keywords); err != nil {
			return Lexicon{}, fmt.Errorf("%w: category %q keywords: %v", common.ErrInvalidLexicon, keyNode.Value, err)
		}
		entries = append(entries, LexiconEntry{Category: keyNode.Value, Keywords: keywords})
	}

	return NewLexicon(entries)
}

// DefaultLexicon returns the built-in personal-finance lexicon used when no
// lexicon file is configured. Single lowercase words only; category order
// is part of the contract.
func DefaultLexicon() Lexicon {
	lex, err := NewLexicon([]LexiconEntry{
		{Category: "food", Keywords: []string{
			"zomato", "swiggy", "doordash", "grubhub", "restaurant", "cafe",
			"coffee", "starbucks", "pizza", "burger", "dominos", "mcdonalds",
			"subway", "chipotle", "bakery", "diner",
		}},
		{Category: "groceries", Keywords: []string{
			"walmart", "costco", "kroger", "safeway", "aldi", "grocery",
			"supermarket", "market", "bigbasket", "instacart",
		}},
		{Category: "transport", Keywords: []string{
			"uber", "lyft", "ola", "taxi", "metro", "transit", "parking",
			"toll", "fuel", "petrol", "shell", "chevron", "amtrak",
		}},
		{Category: "shopping", Keywords: []string{
			"amazon", "flipkart", "ebay", "etsy", "ikea", "nike", "adidas",
			"zara", "myntra", "target", "nordstrom",
		}},
		{Category: "entertainment", Keywords: []string{
			"netflix", "spotify", "hulu", "disney", "youtube", "cinema",
			"theater", "steam", "playstation", "xbox", "twitch", "concert",
		}},
		{Category: "utilities", Keywords: []string{
			"electric", "electricity", "water", "internet", "broadband",
			"comcast", "verizon", "xfinity", "utility", "sewage",
		}},
		{Category: "health", Keywords: []string{
			"pharmacy", "cvs", "walgreens", "doctor", "hospital", "clinic",
			"dental", "gym", "fitness", "yoga",
		}},
		{Category: "travel", Keywords: []string{
			"hotel", "airbnb", "marriott", "hilton", "expedia", "airline",
			"flight", "airways", "hostel", "cruise",
		}},
		{Category: "rent", Keywords: []string{
			"rent", "landlord", "lease", "mortgage",
		}},
		{Category: "income", Keywords: []string{
			"salary", "payroll", "paycheck", "dividend", "refund", "cashback",
			"interest",
		}},
	})
	if err != nil {
		// The built-in table is static; a construction failure is a bug.
		panic(fmt.Sprintf("invalid default lexicon: %v", err))
	}
	return lex
}
