package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func examplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List recent training examples",
		Long: `Show the audit trail of labeling events, newest first. These rows
record every train call and are never consulted by inference.`,
		RunE: runExamples,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of examples to show (0 for all)")

	return cmd
}

func runExamples(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	examples, err := store.ListTrainingExamples(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list training examples: %w", err)
	}

	if len(examples) == 0 {
		cmd.Println("No training examples recorded.")
		return nil
	}

	for _, ex := range examples {
		cmd.Printf("%s  %-12s  %-16s  %q\n",
			ex.CreatedAt.Format("2006-01-02 15:04:05"),
			ex.TransactionID,
			ex.Category,
			ex.Text)
	}

	return nil
}
