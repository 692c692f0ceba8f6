// Package dictionary looks words up in the latin-words.com service and keeps
// the raw responses and parse results around for reuse.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
	"github.com/at-ishikawa/latinlookup/internal/lexical"
)

// ErrNoCandidate is returned when a selection contains no word to look up.
var ErrNoCandidate = errors.New("no lookup candidate in selection")

// Reader looks words up through a transport. Raw responses go through an
// optional store and parse results are kept in a cache.
type Reader struct {
	transport Transport
	store     ResponseStore
	cache     Cache
	group     singleflight.Group
}

// NewReader creates a Reader. A nil store disables raw response persistence.
func NewReader(transport Transport, store ResponseStore, cache Cache) *Reader {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Reader{
		transport: transport,
		store:     store,
		cache:     cache,
	}
}

// Key returns the lookup key for a word.
func Key(word string) string {
	return lexical.StripMacrons(word)
}

// Lookup returns the parse result for a word. Concurrent lookups of the same
// key share one request. A caller whose context ends stops waiting, while the
// shared request keeps running for the others under the transport's timeout.
func (reader *Reader) Lookup(ctx context.Context, word string) (latinwords.ParseResult, error) {
	key := Key(word)
	if result, ok := reader.cache.Get(key); ok {
		slog.Default().Debug("parse cache hit", "key", key)
		return result, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := reader.group.DoChan(key, func() (interface{}, error) {
		return reader.lookup(shared, key)
	})
	select {
	case <-ctx.Done():
		return latinwords.ParseResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return latinwords.ParseResult{}, res.Err
		}
		return res.Val.(latinwords.ParseResult), nil
	}
}

// LookupSelection extracts the candidate word from selected text and looks it
// up.
func (reader *Reader) LookupSelection(ctx context.Context, text string) (string, latinwords.ParseResult, error) {
	candidate, ok := lexical.ExtractCandidate(text)
	if !ok {
		return "", latinwords.ParseResult{}, ErrNoCandidate
	}
	result, err := reader.Lookup(ctx, candidate)
	if err != nil {
		return candidate, latinwords.ParseResult{}, err
	}
	return candidate, result, nil
}

func (reader *Reader) lookup(ctx context.Context, key string) (latinwords.ParseResult, error) {
	response, ok := reader.loadStored(ctx, key)
	if !ok {
		body, err := reader.transport.Fetch(ctx, key)
		if err != nil {
			slog.Default().Error("failed to lookup word", "key", key, "error", err)
			return latinwords.ParseResult{}, fmt.Errorf("transport.Fetch > %w", err)
		}
		response, err = DecodeResponse(body)
		if err != nil {
			return latinwords.ParseResult{}, fmt.Errorf("DecodeResponse > %w", err)
		}
		if response.IsWellFormed() {
			reader.saveStored(ctx, key, body)
		}
	}

	result := latinwords.Parse(response)
	reader.cache.Add(key, result)
	return result, nil
}

func (reader *Reader) loadStored(ctx context.Context, key string) (latinwords.RawResponse, bool) {
	if reader.store == nil {
		return latinwords.RawResponse{}, false
	}
	body, ok, err := reader.store.Get(ctx, key)
	if err != nil {
		slog.Default().Warn("failed to read stored response", "key", key, "error", err)
		return latinwords.RawResponse{}, false
	}
	if !ok {
		return latinwords.RawResponse{}, false
	}
	response, err := DecodeResponse(body)
	if err != nil {
		slog.Default().Warn("ignoring undecodable stored response", "key", key, "error", err)
		return latinwords.RawResponse{}, false
	}
	slog.Default().Debug("stored response hit", "key", key)
	return response, true
}

func (reader *Reader) saveStored(ctx context.Context, key string, body []byte) {
	if reader.store == nil {
		return
	}
	if err := reader.store.Put(ctx, key, body); err != nil {
		slog.Default().Warn("failed to store response", "key", key, "error", err)
	}
}
