package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResponseStore persists raw response bodies by lookup key.
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

// RepositoryStore adapts a ResponseRepository to ResponseStore.
type RepositoryStore struct {
	repository ResponseRepository
	sourceURL  func(key string) string
}

func NewRepositoryStore(repository ResponseRepository, sourceURL func(key string) string) *RepositoryStore {
	return &RepositoryStore{
		repository: repository,
		sourceURL:  sourceURL,
	}
}

func (s *RepositoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	record, err := s.repository.FindByWord(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("repository.FindByWord > %w", err)
	}
	if record == nil {
		return nil, false, nil
	}
	return record.Response, true, nil
}

func (s *RepositoryStore) Put(ctx context.Context, key string, body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("response for %s is not valid JSON", key)
	}
	record := &ResponseRecord{
		Word:       key,
		SourceType: SourceTypeLatinWords,
		SourceURL:  s.sourceURL(key),
		Response:   json.RawMessage(body),
	}
	if err := s.repository.Upsert(ctx, record); err != nil {
		return fmt.Errorf("repository.Upsert > %w", err)
	}
	return nil
}
