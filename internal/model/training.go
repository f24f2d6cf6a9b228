package model

import "time"

// TrainingExample is the audit record of one user-confirmed labeling event.
// Rows are write-once and never consulted by inference.
type TrainingExample struct {
	CreatedAt     time.Time
	ID            string
	TransactionID string
	Text          string
	Category      string
}

// WordCount is one stored (word, category) counter row.
type WordCount struct {
	Word     string
	Category string
	Count    int
}

// CategoryTotal holds the per-category aggregates the predictor reads:
// the cumulative weighted token mass and the number of training calls.
type CategoryTotal struct {
	Category   string
	TotalWords int
	DocCount   int
}
