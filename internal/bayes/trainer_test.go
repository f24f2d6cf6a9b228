package bayes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsense/spendsense/internal/model"
)

func findTotal(totals []model.CategoryTotal, category string) *model.CategoryTotal {
	for i := range totals {
		if totals[i].Category == category {
			return &totals[i]
		}
	}
	return nil
}

func findCount(counts []model.WordCount, word, category string) int {
	for _, wc := range counts {
		if wc.Word == word && wc.Category == category {
			return wc.Count
		}
	}
	return 0
}

func TestTrainer_RepeatedTrainingAccumulates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, trainer.Train(ctx, "t1", "uber ride", "transport", 1))
	}

	totals, err := store.ListCategoryTotals(ctx)
	require.NoError(t, err)
	transport := findTotal(totals, "transport")
	require.NotNil(t, transport)
	assert.Equal(t, n, transport.DocCount)
	assert.Equal(t, 2*n, transport.TotalWords)

	counts, err := store.LookupWordCounts(ctx, []string{"uber", "ride"})
	require.NoError(t, err)
	assert.Equal(t, n, findCount(counts, "uber", "transport"))
	assert.Equal(t, n, findCount(counts, "ride", "transport"))

	examples, err := store.ListTrainingExamples(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, examples, n, "each call writes its own audit row")
}

func TestTrainer_WeightCoercion(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		wantCount int
	}{
		{name: "default weight", weight: 1, wantCount: 1},
		{name: "fractional rounds to nearest", weight: 2.6, wantCount: 3},
		{name: "zero clamps to one", weight: 0, wantCount: 1},
		{name: "negative clamps to one", weight: -3, wantCount: 1},
		{name: "large weight", weight: 5, wantCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()
			trainer := NewTrainer(store)

			require.NoError(t, trainer.Train(ctx, "t1", "zomato", "food", tt.weight))

			counts, err := store.LookupWordCounts(ctx, []string{"zomato"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, findCount(counts, "zomato", "food"))

			totals, err := store.ListCategoryTotals(ctx)
			require.NoError(t, err)
			food := findTotal(totals, "food")
			require.NotNil(t, food)
			assert.Equal(t, tt.wantCount, food.TotalWords)
			assert.Equal(t, 1, food.DocCount, "doc_count increments once per call regardless of weight")
		})
	}
}

func TestTrainer_TokenMultiplicity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	require.NoError(t, trainer.Train(ctx, "t1", "coffee coffee coffee shop", "food", 2))

	counts, err := store.LookupWordCounts(ctx, []string{"coffee", "shop"})
	require.NoError(t, err)
	assert.Equal(t, 6, findCount(counts, "coffee", "food"), "3 occurrences x weight 2")
	assert.Equal(t, 2, findCount(counts, "shop", "food"))

	totals, err := store.ListCategoryTotals(ctx)
	require.NoError(t, err)
	food := findTotal(totals, "food")
	require.NotNil(t, food)
	assert.Equal(t, 8, food.TotalWords)
}

func TestTrainer_EmptyTextIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	require.NoError(t, trainer.Train(ctx, "t1", "!!! ??", "food", 1))

	totals, err := store.ListCategoryTotals(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals)

	examples, err := store.ListTrainingExamples(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, examples, "no audit row for empty token sequences")
}

func TestTrainer_VocabSizeGrowth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	require.NoError(t, trainer.Train(ctx, "t1", "uber ride", "transport", 1))
	size, err := store.GetVocabSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	// Same words under a different category: globally known, no growth.
	require.NoError(t, trainer.Train(ctx, "t2", "uber ride", "travel", 1))
	size, err = store.GetVocabSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	// One new word, one known word.
	require.NoError(t, trainer.Train(ctx, "t3", "uber surge", "transport", 1))
	size, err = store.GetVocabSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestTrainer_VocabSizeMonotonic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	texts := []string{
		"uber ride",
		"zomato order dinner",
		"uber ride",
		"netflix subscription",
		"zomato zomato zomato",
	}

	prev := 0
	for i, text := range texts {
		require.NoError(t, trainer.Train(ctx, "t1", text, "misc", 1))
		size, err := store.GetVocabSize(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, size, prev, "vocab size shrank after training %q (step %d)", text, i)
		prev = size
	}
	assert.Equal(t, 7, prev)
}

func TestTrainer_AuditRowContents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trainer := NewTrainer(store)

	require.NoError(t, trainer.Train(ctx, "txn-42", "Uber *Trip Help", "transport", 1))

	examples, err := store.ListTrainingExamples(ctx, 1)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	ex := examples[0]
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, "txn-42", ex.TransactionID)
	assert.Equal(t, "Uber *Trip Help", ex.Text, "raw text is preserved, not tokenized")
	assert.Equal(t, "transport", ex.Category)
	assert.False(t, ex.CreatedAt.IsZero())
}
