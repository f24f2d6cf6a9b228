package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train <transaction-id> <text> <category>",
		Short: "Record a confirmed category for a transaction description",
		Long: `Record one confirmed labeling event. The model's word counters grow
with every call; training the same transaction again counts as a new event.`,
		Args: cobra.ExactArgs(3),
		RunE: runTrain,
	}

	cmd.Flags().Float64("weight", 1, "Example weight (coerced to the nearest integer >= 1)")

	return cmd
}

func runTrain(cmd *cobra.Command, args []string) error {
	weight, _ := cmd.Flags().GetFloat64("weight")
	transactionID, text, category := args[0], args[1], args[2]

	ctx := cmd.Context()
	classifier, store, err := initClassifier(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := classifier.Train(ctx, transactionID, text, category, weight); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	cmd.Printf("trained %q as %s\n", text, category)
	return nil
}
