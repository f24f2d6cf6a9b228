package bayes

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/spendsense/spendsense/internal/model"
	"github.com/spendsense/spendsense/internal/service"
	"github.com/spendsense/spendsense/internal/tokenizer"
)

// Trainer applies confirmed (text, category) examples to the frequency
// store. Pure online learning: counters only grow, nothing is recomputed or
// decayed. Training the same example twice is deliberately not idempotent;
// each call is a distinct labeling event.
type Trainer struct {
	store service.Storage
	now   func() time.Time
}

// NewTrainer creates a trainer writing to the given store.
func NewTrainer(store service.Storage) *Trainer {
	return &Trainer{store: store, now: time.Now}
}

// Train records one labeling event: an audit row, weighted per-token counter
// increments, category totals, and the global vocabulary size. weight is
// coerced to the nearest integer >= 1; empty text after tokenization is a
// no-op.
func (t *Trainer) Train(ctx context.Context, transactionID, text, category string, weight float64) error {
	w := int(math.Round(weight))
	if w < 1 {
		w = 1
	}

	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		slog.Debug("Skipping training for empty token sequence", "transaction_id", transactionID)
		return nil
	}

	multiplicity := make(map[string]int, len(tokens))
	for _, token := range tokens {
		multiplicity[token]++
	}
	unique := uniqueTokens(tokens)

	example := &model.TrainingExample{
		ID:            ulid.Make().String(),
		TransactionID: transactionID,
		Text:          text,
		Category:      category,
		CreatedAt:     t.now().UTC(),
	}
	if err := t.store.SaveTrainingExample(ctx, example); err != nil {
		return fmt.Errorf("failed to save training example: %w", err)
	}

	// Snapshot which words exist anywhere in the model before this call's
	// increments; the vocabulary grows only by globally-new words.
	existing, err := t.store.LookupWordCounts(ctx, unique)
	if err != nil {
		return fmt.Errorf("failed to look up existing words: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, wc := range existing {
		known[wc.Word] = struct{}{}
	}

	tokenMass := 0
	for _, token := range unique {
		delta := multiplicity[token] * w
		if err := t.store.IncrementWordCount(ctx, token, category, delta); err != nil {
			return fmt.Errorf("failed to increment word count for %q: %w", token, err)
		}
		tokenMass += delta
	}

	if err := t.store.IncrementCategoryTotals(ctx, category, tokenMass); err != nil {
		return fmt.Errorf("failed to increment category totals: %w", err)
	}

	newWords := 0
	for _, token := range unique {
		if _, ok := known[token]; !ok {
			newWords++
		}
	}
	if newWords > 0 {
		vocabSize, err := t.store.GetVocabSize(ctx)
		if err != nil {
			return fmt.Errorf("failed to get vocab size: %w", err)
		}
		if err := t.store.SetVocabSize(ctx, vocabSize+newWords); err != nil {
			return fmt.Errorf("failed to set vocab size: %w", err)
		}
	}

	slog.Debug("Trained example",
		"transaction_id", transactionID,
		"category", category,
		"tokens", len(tokens),
		"token_mass", tokenMass,
		"new_words", newWords)

	return nil
}
