package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		Long: `List the categories the system knows about: lexicon categories with
their keyword counts, and trained categories with their document counts and
accumulated word mass.`,
		RunE: runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	lexicon, err := loadLexicon()
	if err != nil {
		return err
	}

	cmd.Println("Lexicon categories:")
	for _, category := range lexicon.Categories() {
		cmd.Printf("  %-16s %d keywords\n", category, len(lexicon.Keywords(category)))
	}

	totals, err := store.ListCategoryTotals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list category totals: %w", err)
	}

	if len(totals) == 0 {
		cmd.Println("\nNo trained categories yet.")
		return nil
	}

	vocabSize, err := store.GetVocabSize(ctx)
	if err != nil {
		return fmt.Errorf("failed to get vocab size: %w", err)
	}

	cmd.Println("\nTrained categories:")
	for _, ct := range totals {
		cmd.Printf("  %-16s %d docs, %d words\n", ct.Category, ct.DocCount, ct.TotalWords)
	}
	cmd.Printf("\nVocabulary: %d distinct words\n", vocabSize)

	// Flag lexicon/model drift: trained categories absent from the lexicon.
	lexiconSet := make(map[string]struct{})
	for _, category := range lexicon.Categories() {
		lexiconSet[category] = struct{}{}
	}
	var modelOnly []string
	for _, ct := range totals {
		if _, ok := lexiconSet[ct.Category]; !ok {
			modelOnly = append(modelOnly, ct.Category)
		}
	}
	if len(modelOnly) > 0 {
		cmd.Printf("Model-only categories: %s\n", strings.Join(modelOnly, ", "))
	}

	return nil
}
