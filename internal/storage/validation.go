package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spendsense/spendsense/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidDelta   = errors.New("delta must be positive")
	ErrInvalidExample = errors.New("invalid training example")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePositive ensures a counter delta is at least 1.
func validatePositive(n int, paramName string) error {
	if n < 1 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidDelta, paramName, n)
	}
	return nil
}

// validateTrainingExample validates an audit row before insert.
func validateTrainingExample(example *model.TrainingExample) error {
	if example == nil {
		return fmt.Errorf("%w: example", ErrNilParameter)
	}
	if example.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExample)
	}
	if example.TransactionID == "" {
		return fmt.Errorf("%w: missing transaction ID", ErrInvalidExample)
	}
	if strings.TrimSpace(example.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExample)
	}
	if example.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidExample)
	}
	return nil
}
