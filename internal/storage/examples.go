package storage

import (
	"context"
	"fmt"

	"github.com/spendsense/spendsense/internal/model"
)

// SaveTrainingExample persists one audit row for a labeling event. Rows are
// write-once; nothing in the application updates or deletes them.
func (s *SQLiteStorage) SaveTrainingExample(ctx context.Context, example *model.TrainingExample) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrainingExample(example); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO training_examples (id, transaction_id, text, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, example.ID, example.TransactionID, example.Text, example.Category, example.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save training example: %w", err)
	}
	return nil
}

// ListTrainingExamples returns the most recent audit rows, newest first.
// A limit of 0 or less returns everything.
func (s *SQLiteStorage) ListTrainingExamples(ctx context.Context, limit int) ([]model.TrainingExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, transaction_id, text, category, created_at
		FROM training_examples
		ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list training examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.TrainingExample
	for rows.Next() {
		var ex model.TrainingExample
		if err := rows.Scan(&ex.ID, &ex.TransactionID, &ex.Text, &ex.Category, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan training example: %w", err)
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate training examples: %w", err)
	}

	return examples, nil
}
