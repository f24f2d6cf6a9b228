// Package model defines the core domain models used throughout the application.
package model

// SuggestionSource indicates which engine produced a suggestion.
type SuggestionSource string

// Suggestion source constants.
const (
	SourceRule SuggestionSource = "rule"
	SourceNB   SuggestionSource = "nb"
	SourceNone SuggestionSource = "none"
)

// Suggestion is the final output of the hybrid classifier for one input text.
// Category is empty when no suggestion could be made; Explanation always
// carries the human-readable decision trail.
type Suggestion struct {
	Category    string
	Source      SuggestionSource
	Explanation string
	Confidence  float64
}

// Matched reports whether the suggestion carries a category.
func (s Suggestion) Matched() bool {
	return s.Category != ""
}

// NoMatchReason distinguishes the ways a prediction can come back empty.
// An empty prediction is a first-class result, not an error.
type NoMatchReason string

// No-match reason constants.
const (
	ReasonEmptyInput    NoMatchReason = "empty input"
	ReasonUntrained     NoMatchReason = "untrained"
	ReasonUnseenTokens  NoMatchReason = "all tokens unseen"
	ReasonLowConfidence NoMatchReason = "low confidence"
)
