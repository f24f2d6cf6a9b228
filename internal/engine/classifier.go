// Package engine implements the hybrid classifier that reconciles the rule
// engine and the naive-Bayes predictor into one suggestion, and exposes the
// two entry points the surrounding application calls: Predict and Train.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spendsense/spendsense/internal/bayes"
	"github.com/spendsense/spendsense/internal/model"
	"github.com/spendsense/spendsense/internal/rules"
	"github.com/spendsense/spendsense/internal/service"
	"github.com/spendsense/spendsense/internal/tokenizer"
)

// Combiner thresholds.
const (
	// overrideThreshold is the NB probability needed to overrule a rule hit
	// on a different category.
	overrideThreshold = 0.85
	// nbThreshold is the NB probability needed to stand alone when no rule
	// matched.
	nbThreshold = 0.6
)

// Classifier wires the tokenizer, rule engine, predictor, and trainer
// behind the two application-facing entry points. It keeps no state across
// calls; all learned state lives in the store.
type Classifier struct {
	rules     *rules.Engine
	predictor *bayes.Predictor
	trainer   *bayes.Trainer
}

// New creates a classifier over the given store and lexicon.
func New(store service.Storage, lexicon rules.Lexicon) *Classifier {
	return &Classifier{
		rules:     rules.NewEngine(lexicon),
		predictor: bayes.NewPredictor(store),
		trainer:   bayes.NewTrainer(store),
	}
}

// Predict suggests a category for a transaction description. A suggestion
// with an empty category is a first-class no-match result, never an error;
// errors are reserved for storage failures.
func (c *Classifier) Predict(ctx context.Context, text string) (model.Suggestion, error) {
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return model.Suggestion{
			Source:      model.SourceNone,
			Explanation: "no usable tokens in input",
		}, nil
	}

	ruleResult := c.rules.Match(tokens)

	nbResult, err := c.predictor.Predict(ctx, text)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("prediction failed: %w", err)
	}

	suggestion := combine(ruleResult, nbResult)

	slog.Debug("Produced suggestion",
		"category", suggestion.Category,
		"confidence", suggestion.Confidence,
		"source", suggestion.Source)

	return suggestion, nil
}

// Train records a user-confirmed (text, category) example. weight scales
// the example's token mass and is coerced to the nearest integer >= 1.
func (c *Classifier) Train(ctx context.Context, transactionID, text, category string, weight float64) error {
	return c.trainer.Train(ctx, transactionID, text, category, weight)
}

// combine reconciles the two engine outputs. Decision table:
//   - rule hit, NB confident (>= overrideThreshold) on a different
//     category: NB wins.
//   - rule hit otherwise: rule wins, carrying the rule engine's own score.
//   - no rule hit, NB at or above nbThreshold: NB wins.
//   - otherwise: no suggestion, confidence reports the stronger signal.
func combine(ruleResult rules.Match, nbResult bayes.Result) model.Suggestion {
	if ruleResult.Matched() {
		if nbResult.Matched() && nbResult.Category != ruleResult.Category && nbResult.Probability >= overrideThreshold {
			return model.Suggestion{
				Category:   nbResult.Category,
				Confidence: nbResult.Probability,
				Source:     model.SourceNB,
				Explanation: explain(
					fmt.Sprintf("model overrode rule match %s with %s (probability %.2f >= %.2f)",
						ruleResult.Category, nbResult.Category, nbResult.Probability, overrideThreshold),
					ruleResult, nbResult),
			}
		}
		return model.Suggestion{
			Category:   ruleResult.Category,
			Confidence: ruleResult.Score,
			Source:     model.SourceRule,
			Explanation: explain(
				fmt.Sprintf("keyword rule matched %s (score %.2f)", ruleResult.Category, ruleResult.Score),
				ruleResult, nbResult),
		}
	}

	if nbResult.Matched() && nbResult.Probability >= nbThreshold {
		return model.Suggestion{
			Category:   nbResult.Category,
			Confidence: nbResult.Probability,
			Source:     model.SourceNB,
			Explanation: explain(
				fmt.Sprintf("model predicted %s (probability %.2f)", nbResult.Category, nbResult.Probability),
				ruleResult, nbResult),
		}
	}

	confidence := ruleResult.Score
	if nbResult.Probability > confidence {
		confidence = nbResult.Probability
	}

	reason := "no rule matched and model prediction was below threshold"
	if nbResult.Reason != "" {
		reason = fmt.Sprintf("no rule matched and model made no prediction (%s)", nbResult.Reason)
	}

	return model.Suggestion{
		Source:      model.SourceNone,
		Confidence:  confidence,
		Explanation: explain(reason, ruleResult, nbResult),
	}
}

// explain concatenates the branch justification with both engines' traces.
func explain(branch string, ruleResult rules.Match, nbResult bayes.Result) string {
	parts := make([]string, 0, 1+len(ruleResult.Trace)+len(nbResult.Trace))
	parts = append(parts, branch)
	parts = append(parts, ruleResult.Trace...)
	parts = append(parts, nbResult.Trace...)
	return strings.Join(parts, "; ")
}
