package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spendsense/spendsense/internal/model"
)

// vocabSizeKey is the model_meta row holding the global vocabulary size.
const vocabSizeKey = "vocab_size"

// IncrementWordCount atomically adds delta to the (word, category) counter,
// inserting the row if absent. One upsert statement; never read-then-write.
func (s *SQLiteStorage) IncrementWordCount(ctx context.Context, word, category string, delta int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(word, "word"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}
	if err := validatePositive(delta, "delta"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO word_frequencies (word, category, count)
		VALUES (?, ?, ?)
		ON CONFLICT(word, category) DO UPDATE SET count = count + excluded.count
	`, word, category, delta)
	if err != nil {
		return fmt.Errorf("failed to increment word count: %w", err)
	}
	return nil
}

// IncrementCategoryTotals atomically adds tokenMass to the category's word
// total and bumps its document count by one, inserting the row if absent.
func (s *SQLiteStorage) IncrementCategoryTotals(ctx context.Context, category string, tokenMass int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}
	if err := validatePositive(tokenMass, "tokenMass"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_totals (category, total_words, doc_count)
		VALUES (?, ?, 1)
		ON CONFLICT(category) DO UPDATE SET
			total_words = total_words + excluded.total_words,
			doc_count = doc_count + 1
	`, category, tokenMass)
	if err != nil {
		return fmt.Errorf("failed to increment category totals: %w", err)
	}
	return nil
}

// LookupWordCounts returns all stored (word, category, count) rows for the
// given words. Words with no rows under any category are simply absent from
// the result.
func (s *SQLiteStorage) LookupWordCounts(ctx context.Context, words []string) ([]model.WordCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(words))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(words))
	for i, w := range words {
		args[i] = w
	}

	query := fmt.Sprintf(`
		SELECT word, category, count
		FROM word_frequencies
		WHERE word IN (%s)
		ORDER BY word, category
	`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to look up word counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []model.WordCount
	for rows.Next() {
		var wc model.WordCount
		if err := rows.Scan(&wc.Word, &wc.Category, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word count: %w", err)
		}
		counts = append(counts, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate word counts: %w", err)
	}

	return counts, nil
}

// ListCategoryTotals returns every category's totals, ordered by category
// name ascending. Callers rely on this order for deterministic tie-breaking.
func (s *SQLiteStorage) ListCategoryTotals(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, total_words, doc_count
		FROM category_totals
		ORDER BY category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.CategoryTotal
	for rows.Next() {
		var ct model.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.TotalWords, &ct.DocCount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}

	return totals, nil
}

// GetVocabSize returns the global count of distinct words ever trained, or
// 0 when the model has never been trained.
func (s *SQLiteStorage) GetVocabSize(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var size int
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM model_meta WHERE key = ?
	`, vocabSizeKey).Scan(&size)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get vocab size: %w", err)
	}
	return size, nil
}

// SetVocabSize stores the global vocabulary size.
func (s *SQLiteStorage) SetVocabSize(ctx context.Context, n int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: vocab size %d", ErrInvalidDelta, n)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO model_meta (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, vocabSizeKey, n)
	if err != nil {
		return fmt.Errorf("failed to set vocab size: %w", err)
	}
	return nil
}
