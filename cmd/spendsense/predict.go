package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <text>",
		Short: "Suggest a category for a transaction description",
		Long: `Run the hybrid classifier over a free-text transaction description
and print the suggested category, its confidence, and the decision trail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPredict,
	}

	cmd.Flags().Bool("explain", false, "Print the full explanation trail")

	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	explain, _ := cmd.Flags().GetBool("explain")
	text := strings.Join(args, " ")

	ctx := cmd.Context()
	classifier, store, err := initClassifier(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}
	defer func() { _ = store.Close() }()

	suggestion, err := classifier.Predict(ctx, text)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	if suggestion.Matched() {
		cmd.Printf("%s (confidence %.2f, source %s)\n", suggestion.Category, suggestion.Confidence, suggestion.Source)
	} else {
		cmd.Println("no suggestion")
	}
	if explain {
		cmd.Printf("explanation: %s\n", suggestion.Explanation)
	}

	return nil
}
