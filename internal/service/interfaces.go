// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/spendsense/spendsense/internal/model"
)

// Storage defines the contract for the frequency store. The predictor and
// trainer read and mutate counters only through these operations; every
// increment is a single atomic upsert at the storage layer so concurrent
// trainers touching the same key never lose updates.
type Storage interface {
	// Training example audit trail. Write-once, never read by inference.
	SaveTrainingExample(ctx context.Context, example *model.TrainingExample) error
	ListTrainingExamples(ctx context.Context, limit int) ([]model.TrainingExample, error)

	// Word and category counters.
	IncrementWordCount(ctx context.Context, word, category string, delta int) error
	IncrementCategoryTotals(ctx context.Context, category string, tokenMass int) error
	LookupWordCounts(ctx context.Context, words []string) ([]model.WordCount, error)
	ListCategoryTotals(ctx context.Context) ([]model.CategoryTotal, error)

	// Global vocabulary size. GetVocabSize returns 0 when unset.
	GetVocabSize(ctx context.Context) (int, error)
	SetVocabSize(ctx context.Context, n int) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier is the engine surface exposed to the surrounding application.
type Classifier interface {
	Predict(ctx context.Context, text string) (model.Suggestion, error)
	Train(ctx context.Context, transactionID, text, category string, weight float64) error
}
