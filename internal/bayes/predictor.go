// Package bayes implements the statistical half of the hybrid classifier: a
// naive-Bayes predictor over persistently stored word counters, and the
// online trainer that grows those counters from confirmed examples.
package bayes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spendsense/spendsense/internal/model"
	"github.com/spendsense/spendsense/internal/service"
	"github.com/spendsense/spendsense/internal/tokenizer"
)

// MinConfidence is the probability gate below which a prediction is
// suppressed rather than returned.
const MinConfidence = 0.55

// Result is the outcome of one prediction. Category is empty when no
// prediction was made; Reason then says why. Probability is populated even
// for low-confidence suppressions so the combiner can report it.
type Result struct {
	Category    string
	Reason      model.NoMatchReason
	Trace       []string
	Probability float64
}

// Matched reports whether the predictor committed to a category.
func (r Result) Matched() bool {
	return r.Category != ""
}

// Predictor scores categories for a token set against the frequency store.
// It holds no counter state of its own; every prediction reads the store.
type Predictor struct {
	store service.Storage
}

// NewPredictor creates a predictor reading from the given store.
func NewPredictor(store service.Storage) *Predictor {
	return &Predictor{store: store}
}

// scored is the internal outcome of scoring one text against the store.
type scored struct {
	reason    model.NoMatchReason
	totals    []model.CategoryTotal
	probs     []float64
	surviving []string
	seen      map[string]map[string]int
	totalDocs int
}

// Predict tokenizes text and scores every known category with add-one
// smoothed log-likelihoods, normalized via softmax. Unseen tokens are
// excluded entirely rather than smoothed: a token the model has never seen
// contributes no information and must not bias the score.
func (p *Predictor) Predict(ctx context.Context, text string) (Result, error) {
	sc, err := p.score(ctx, text)
	if err != nil {
		return Result{}, err
	}
	if sc.reason != "" {
		return Result{Reason: sc.reason}, nil
	}

	// Argmax; ties resolve to the first category in store iteration order
	// (category name ascending).
	best := 0
	for i := 1; i < len(sc.probs); i++ {
		if sc.probs[i] > sc.probs[best] {
			best = i
		}
	}

	trace := buildTrace(sc.totals[best], sc.totalDocs, sc.surviving, sc.seen)

	if sc.probs[best] < MinConfidence {
		return Result{
			Reason:      model.ReasonLowConfidence,
			Probability: sc.probs[best],
			Trace:       trace,
		}, nil
	}

	return Result{
		Category:    sc.totals[best].Category,
		Probability: sc.probs[best],
		Trace:       trace,
	}, nil
}

// Distribution returns the softmax-normalized probability per known
// category for text, before any confidence gating, or nil when no
// prediction is possible. Used by diagnostics and tests.
func (p *Predictor) Distribution(ctx context.Context, text string) (map[string]float64, error) {
	sc, err := p.score(ctx, text)
	if err != nil {
		return nil, err
	}
	if sc.reason != "" {
		return nil, nil
	}

	dist := make(map[string]float64, len(sc.totals))
	for i, ct := range sc.totals {
		dist[ct.Category] = sc.probs[i]
	}
	return dist, nil
}

func (p *Predictor) score(ctx context.Context, text string) (scored, error) {
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return scored{reason: model.ReasonEmptyInput}, nil
	}

	totals, err := p.store.ListCategoryTotals(ctx)
	if err != nil {
		return scored{}, fmt.Errorf("failed to load category totals: %w", err)
	}

	totalDocs := 0
	for _, ct := range totals {
		totalDocs += ct.DocCount
	}
	if totalDocs == 0 {
		return scored{reason: model.ReasonUntrained}, nil
	}

	vocabSize, err := p.store.GetVocabSize(ctx)
	if err != nil {
		return scored{}, fmt.Errorf("failed to load vocab size: %w", err)
	}
	if vocabSize == 0 {
		vocabSize = 1
	}

	// Presence, not repetition count, drives scoring.
	unique := uniqueTokens(tokens)

	rows, err := p.store.LookupWordCounts(ctx, unique)
	if err != nil {
		return scored{}, fmt.Errorf("failed to look up word counts: %w", err)
	}

	// word -> category -> count, for the words the model has seen.
	seen := make(map[string]map[string]int)
	for _, wc := range rows {
		if seen[wc.Word] == nil {
			seen[wc.Word] = make(map[string]int)
		}
		seen[wc.Word][wc.Category] = wc.Count
	}

	surviving := make([]string, 0, len(unique))
	for _, token := range unique {
		if len(seen[token]) > 0 {
			surviving = append(surviving, token)
		}
	}
	if len(surviving) == 0 {
		return scored{reason: model.ReasonUnseenTokens}, nil
	}

	scores := make([]float64, len(totals))
	for i, ct := range totals {
		docCount := ct.DocCount
		if docCount == 0 {
			docCount = 1 // keep the prior finite
		}
		score := math.Log(float64(docCount) / float64(totalDocs))
		denom := float64(ct.TotalWords + vocabSize)
		for _, token := range surviving {
			count := seen[token][ct.Category]
			score += math.Log(float64(count+1) / denom)
		}
		scores[i] = score
	}

	// Softmax with max subtraction for numerical stability.
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}

	return scored{
		totals:    totals,
		probs:     probs,
		surviving: surviving,
		seen:      seen,
		totalDocs: totalDocs,
	}, nil
}

// uniqueTokens returns the distinct tokens in first-seen order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

// buildTrace renders the prior for the winning category and, for each
// surviving token, the categories it was found under with counts.
func buildTrace(winner model.CategoryTotal, totalDocs int, surviving []string, seen map[string]map[string]int) []string {
	trace := make([]string, 0, len(surviving)+1)
	trace = append(trace, fmt.Sprintf("prior: %s %d/%d docs", winner.Category, winner.DocCount, totalDocs))

	for _, token := range surviving {
		parts := make([]string, 0, len(seen[token]))
		for category, count := range seen[token] {
			parts = append(parts, fmt.Sprintf("%s=%d", category, count))
		}
		sort.Strings(parts)
		trace = append(trace, fmt.Sprintf("token %s: %s", token, strings.Join(parts, ", ")))
	}
	return trace
}
