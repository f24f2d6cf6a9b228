package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spendsense/spendsense/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("expected schema version %d, got %d", ExpectedSchemaVersion, version)
	}
}

func TestIncrementWordCount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name      string
		word      string
		category  string
		deltas    []int
		wantCount int
		wantErr   bool
	}{
		{
			name:      "insert then accumulate",
			word:      "uber",
			category:  "transport",
			deltas:    []int{1, 2, 3},
			wantCount: 6,
		},
		{
			name:      "separate categories do not collide",
			word:      "market",
			category:  "groceries",
			deltas:    []int{4},
			wantCount: 4,
		},
		{
			name:     "zero delta rejected",
			word:     "uber",
			category: "transport",
			deltas:   []int{0},
			wantErr:  true,
		},
		{
			name:     "empty word rejected",
			word:     "",
			category: "transport",
			deltas:   []int{1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastErr error
			for _, delta := range tt.deltas {
				lastErr = store.IncrementWordCount(ctx, tt.word, tt.category, delta)
			}
			if tt.wantErr {
				if lastErr == nil {
					t.Fatal("expected error")
				}
				return
			}
			if lastErr != nil {
				t.Fatalf("unexpected error: %v", lastErr)
			}

			counts, err := store.LookupWordCounts(ctx, []string{tt.word})
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			found := false
			for _, wc := range counts {
				if wc.Word == tt.word && wc.Category == tt.category {
					found = true
					if wc.Count != tt.wantCount {
						t.Errorf("expected count %d, got %d", tt.wantCount, wc.Count)
					}
				}
			}
			if !found {
				t.Errorf("no row for (%s, %s)", tt.word, tt.category)
			}
		})
	}
}

func TestIncrementCategoryTotals(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.IncrementCategoryTotals(ctx, "food", 5); err != nil {
		t.Fatalf("first increment failed: %v", err)
	}
	if err := store.IncrementCategoryTotals(ctx, "food", 3); err != nil {
		t.Fatalf("second increment failed: %v", err)
	}
	if err := store.IncrementCategoryTotals(ctx, "transport", 2); err != nil {
		t.Fatalf("transport increment failed: %v", err)
	}

	totals, err := store.ListCategoryTotals(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}

	// Ordered by category name ascending.
	if totals[0].Category != "food" || totals[1].Category != "transport" {
		t.Errorf("unexpected order: %v", totals)
	}
	if totals[0].TotalWords != 8 || totals[0].DocCount != 2 {
		t.Errorf("food totals = %+v, want total_words=8 doc_count=2", totals[0])
	}
	if totals[1].TotalWords != 2 || totals[1].DocCount != 1 {
		t.Errorf("transport totals = %+v, want total_words=2 doc_count=1", totals[1])
	}
}

func TestVocabSize(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	size, err := store.GetVocabSize(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if size != 0 {
		t.Errorf("expected default vocab size 0, got %d", size)
	}

	if err := store.SetVocabSize(ctx, 42); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	size, err = store.GetVocabSize(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if size != 42 {
		t.Errorf("expected vocab size 42, got %d", size)
	}

	// Overwrite, not accumulate.
	if err := store.SetVocabSize(ctx, 40); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	size, _ = store.GetVocabSize(ctx)
	if size != 40 {
		t.Errorf("expected vocab size 40, got %d", size)
	}

	if err := store.SetVocabSize(ctx, -1); err == nil {
		t.Error("expected error for negative vocab size")
	}
}

func TestLookupWordCounts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	seed := []struct {
		word     string
		category string
		count    int
	}{
		{"uber", "transport", 3},
		{"uber", "food", 1},
		{"zomato", "food", 5},
	}
	for _, s := range seed {
		if err := store.IncrementWordCount(ctx, s.word, s.category, s.count); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	counts, err := store.LookupWordCounts(ctx, []string{"uber", "zomato", "unseen"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(counts), counts)
	}
	for _, wc := range counts {
		if wc.Word == "unseen" {
			t.Errorf("unseen word should not produce rows: %+v", wc)
		}
	}

	counts, err = store.LookupWordCounts(ctx, nil)
	if err != nil {
		t.Fatalf("empty lookup failed: %v", err)
	}
	if counts != nil {
		t.Errorf("expected nil for empty word set, got %v", counts)
	}
}

func TestTrainingExamples(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ex := &model.TrainingExample{
			ID:            string(rune('a'+i)) + "-example",
			TransactionID: "txn-1",
			Text:          "uber ride",
			Category:      "transport",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveTrainingExample(ctx, ex); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	examples, err := store.ListTrainingExamples(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples with limit, got %d", len(examples))
	}
	// Newest first: IDs are generated sortable, so descending ID order.
	if examples[0].ID != "c-example" {
		t.Errorf("expected newest example first, got %s", examples[0].ID)
	}

	all, err := store.ListTrainingExamples(ctx, 0)
	if err != nil {
		t.Fatalf("unlimited list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 examples, got %d", len(all))
	}
}

func TestSaveTrainingExample_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		example *model.TrainingExample
		name    string
	}{
		{name: "nil example", example: nil},
		{name: "missing id", example: &model.TrainingExample{TransactionID: "t", Category: "food", CreatedAt: time.Now()}},
		{name: "missing transaction id", example: &model.TrainingExample{ID: "x", Category: "food", CreatedAt: time.Now()}},
		{name: "missing category", example: &model.TrainingExample{ID: "x", TransactionID: "t", CreatedAt: time.Now()}},
		{name: "zero timestamp", example: &model.TrainingExample{ID: "x", TransactionID: "t", Category: "food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveTrainingExample(ctx, tt.example); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
