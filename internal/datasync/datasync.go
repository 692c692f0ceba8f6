// Package datasync moves raw dictionary responses between the file cache, the
// collector output and the database.
package datasync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/latinlookup/internal/collector"
	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

// ImportResult tracks counts for an import.
type ImportResult struct {
	New     int
	Updated int
	Skipped int
	Invalid int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes raw responses into the database.
type Importer struct {
	repository dictionary.ResponseRepository
	sourceURL  func(key string) string
	writer     io.Writer
}

func NewImporter(repository dictionary.ResponseRepository, sourceURL func(key string) string, writer io.Writer) *Importer {
	return &Importer{
		repository: repository,
		sourceURL:  sourceURL,
		writer:     writer,
	}
}

// FileSource lists and reads cached responses.
type FileSource interface {
	Keys() ([]string, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// ImportFileCache imports every response of the file cache.
func (imp *Importer) ImportFileCache(ctx context.Context, source FileSource, opts ImportOptions) (*ImportResult, error) {
	keys, err := source.Keys()
	if err != nil {
		return nil, fmt.Errorf("source.Keys() > %w", err)
	}

	responses := make(map[string][]byte, len(keys))
	for _, key := range keys {
		body, ok, err := source.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("source.Get(%s) > %w", key, err)
		}
		if ok {
			responses[key] = body
		}
	}
	return imp.importResponses(ctx, keys, responses, opts)
}

// ImportCollected imports a collector output file. Failed lookups are skipped
// and each message is stored as a successful service payload.
func (imp *Importer) ImportCollected(ctx context.Context, messages map[string]string, opts ImportOptions) (*ImportResult, error) {
	keys := make([]string, 0, len(messages))
	responses := make(map[string][]byte, len(messages))
	for word, message := range messages {
		if strings.HasPrefix(message, collector.ErrorPrefix) {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", word, message)
			continue
		}
		body, err := json.Marshal(latinwords.RawResponse{Status: latinwords.StatusOK, Message: message})
		if err != nil {
			return nil, fmt.Errorf("json.Marshal() > %w", err)
		}
		key := dictionary.Key(word)
		keys = append(keys, key)
		responses[key] = body
	}
	sort.Strings(keys)
	return imp.importResponses(ctx, keys, responses, opts)
}

func (imp *Importer) importResponses(ctx context.Context, keys []string, responses map[string][]byte, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	existing, err := imp.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	existingWords := make(map[string]bool, len(existing))
	for _, record := range existing {
		existingWords[record.Word] = true
	}

	records := make([]*dictionary.ResponseRecord, 0, len(keys))
	for _, key := range keys {
		body, ok := responses[key]
		if !ok {
			continue
		}
		if !json.Valid(body) {
			fmt.Fprintf(imp.writer, "  [INVALID]  %q\n", key)
			result.Invalid++
			continue
		}

		if existingWords[key] {
			if !opts.UpdateExisting {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", key)
				result.Skipped++
				continue
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", key)
			result.Updated++
		} else {
			fmt.Fprintf(imp.writer, "  [NEW]  %q\n", key)
			result.New++
		}
		existingWords[key] = true
		records = append(records, &dictionary.ResponseRecord{
			Word:       key,
			SourceType: dictionary.SourceTypeLatinWords,
			SourceURL:  imp.sourceURL(key),
			Response:   json.RawMessage(body),
		})
	}

	if opts.DryRun || len(records) == 0 {
		return &result, nil
	}
	if err := imp.repository.BatchUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("BatchUpsert() > %w", err)
	}
	return &result, nil
}

// Exporter reads the database.
type Exporter struct {
	repository dictionary.ResponseRepository
}

func NewExporter(repository dictionary.ResponseRepository) *Exporter {
	return &Exporter{repository: repository}
}

// Export returns every stored response.
func (e *Exporter) Export(ctx context.Context) ([]dictionary.ResponseRecord, error) {
	records, err := e.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll() > %w", err)
	}
	return records, nil
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []dictionary.ResponseRecord) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}
