package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/latinlookup/internal/config"
	"github.com/at-ishikawa/latinlookup/internal/database"
	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	latinWords := cfg.Dictionaries.LatinWords
	client := dictionary.NewClient(latinWords.ClientConfig())
	defer func() {
		_ = client.Close()
	}()

	cache, err := dictionary.NewCache(latinWords.CacheCapacity)
	if err != nil {
		return fmt.Errorf("dictionary.NewCache() > %w", err)
	}

	var store dictionary.ResponseStore
	switch latinWords.Store {
	case config.StoreFile:
		store = dictionary.NewFileCache(latinWords.CacheDirectory)
	case config.StoreDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("database.Open() > %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		store = dictionary.NewRepositoryStore(dictionary.NewDBResponseRepository(db), client.SourceURL)
	}

	handler := server.NewLookupHandler(dictionary.NewReader(client, store, cache))
	path, h := server.NewLookupServiceHandler(handler)

	mux := http.NewServeMux()
	mux.Handle(path, h)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.CORSMiddleware(cfg.Server.CORS.AllowedOrigins, h2c.NewHandler(mux, &http2.Server{})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("Starting server", "addr", httpServer.Addr, "store", latinWords.Store)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown() > %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("LATINLOOKUP_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
