package main

import (
	"fmt"

	"github.com/at-ishikawa/latinlookup/internal/config"
	"github.com/at-ishikawa/latinlookup/internal/database"
	"github.com/at-ishikawa/latinlookup/internal/dictionary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newReader builds a Reader from the configuration. The returned function
// releases the client and the store.
func newReader(cfg *config.Config) (*dictionary.Reader, func(), error) {
	latinWords := cfg.Dictionaries.LatinWords
	client := dictionary.NewClient(latinWords.ClientConfig())

	cache, err := dictionary.NewCache(latinWords.CacheCapacity)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("dictionary.NewCache() > %w", err)
	}

	store, closeStore, err := newResponseStore(cfg, client.SourceURL)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("newResponseStore() > %w", err)
	}

	cleanup := func() {
		closeStore()
		_ = client.Close()
	}
	return dictionary.NewReader(client, store, cache), cleanup, nil
}

func newResponseStore(cfg *config.Config, sourceURL func(string) string) (dictionary.ResponseStore, func(), error) {
	switch cfg.Dictionaries.LatinWords.Store {
	case config.StoreNone:
		return nil, func() {}, nil
	case config.StoreDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		store := dictionary.NewRepositoryStore(dictionary.NewDBResponseRepository(db), sourceURL)
		return store, func() { _ = db.Close() }, nil
	default:
		return dictionary.NewFileCache(cfg.Dictionaries.LatinWords.CacheDirectory), func() {}, nil
	}
}
