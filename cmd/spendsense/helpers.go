package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/spendsense/spendsense/internal/config"
	"github.com/spendsense/spendsense/internal/engine"
	"github.com/spendsense/spendsense/internal/rules"
	"github.com/spendsense/spendsense/internal/service"
	"github.com/spendsense/spendsense/internal/storage"
)

const defaultDBPath = "$HOME/.local/share/spendsense/spendsense.db"

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadLexicon returns the configured lexicon file if set, the built-in
// lexicon otherwise.
func loadLexicon() (rules.Lexicon, error) {
	path := viper.GetString("lexicon.path")
	if path == "" {
		return rules.DefaultLexicon(), nil
	}
	lexicon, err := rules.LoadLexicon(config.ExpandPath(path))
	if err != nil {
		return rules.Lexicon{}, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lexicon, nil
}

// initClassifier wires storage and lexicon into the classifier. The caller
// owns the returned storage handle and must close it.
func initClassifier(ctx context.Context) (*engine.Classifier, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	lexicon, err := loadLexicon()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return engine.New(store, lexicon), store, nil
}
