// Package collector fetches raw dictionary responses for a word list and keeps
// them in a JSON file keyed by word.
package collector

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/internal/lexical"
)

// ErrorPrefix starts the value recorded for a word whose lookup failed.
const ErrorPrefix = "ERROR: "

// Stats summarizes one collection run.
type Stats struct {
	Total       int
	Existing    int
	Fetched     int
	Failed      int
	Interrupted bool
}

type Collector struct {
	transport dictionary.Transport
	delay     time.Duration
}

func NewCollector(transport dictionary.Transport, delay time.Duration) *Collector {
	return &Collector{
		transport: transport,
		delay:     delay,
	}
}

// Collect fetches every word missing from the output file and saves the file
// after each word. Cancelling ctx stops the run with the progress saved.
func (c *Collector) Collect(ctx context.Context, words []string, outputPath string) (Stats, error) {
	responses, err := LoadResponses(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("LoadResponses > %w", err)
	}

	stats := Stats{Total: len(words)}
	pending := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := responses[word]; ok {
			stats.Existing++
			continue
		}
		pending = append(pending, word)
	}
	slog.Default().Info("collecting responses",
		"words", stats.Total,
		"existing", stats.Existing,
		"pending", len(pending))

	for i, word := range pending {
		if _, ok := responses[word]; ok {
			continue
		}
		if i > 0 {
			if err := wait(ctx, c.delay); err != nil {
				stats.Interrupted = true
				break
			}
		}

		message, err := c.fetchMessage(ctx, word)
		if ctx.Err() != nil {
			stats.Interrupted = true
			break
		}
		if err != nil {
			slog.Default().Warn("failed to fetch word", "word", word, "error", err)
			message = failureMessage(err)
			stats.Failed++
		} else {
			stats.Fetched++
		}
		responses[word] = message

		if err := SaveResponses(outputPath, responses); err != nil {
			return stats, fmt.Errorf("SaveResponses > %w", err)
		}
		slog.Default().Debug("collected word", "word", word, "progress", fmt.Sprintf("%d/%d", i+1, len(pending)))
	}

	if stats.Interrupted {
		slog.Default().Info("collection interrupted, progress saved", "output", outputPath)
	}
	if err := SaveResponses(outputPath, responses); err != nil {
		return stats, fmt.Errorf("SaveResponses > %w", err)
	}
	return stats, nil
}

var errInvalidJSON = errors.New("invalid JSON response")

func (c *Collector) fetchMessage(ctx context.Context, word string) (string, error) {
	body, err := c.transport.Fetch(ctx, dictionary.Key(word))
	if err != nil {
		return "", fmt.Errorf("transport.Fetch > %w", err)
	}
	response, err := dictionary.DecodeResponse(body)
	if err != nil {
		return "", errInvalidJSON
	}
	return response.Message, nil
}

// failureMessage is the value recorded for a word whose lookup failed.
func failureMessage(err error) string {
	var statusErr *dictionary.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%sStatus code %d", ErrorPrefix, statusErr.StatusCode)
	case errors.Is(err, errInvalidJSON):
		return ErrorPrefix + "Invalid JSON response"
	default:
		return ErrorPrefix + "Request failed - " + err.Error()
	}
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// LoadWords reads a word list. HTML files contribute the words of their
// visible text; other files hold one word per line.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		words, err := lexical.ExtractWordsFromHTML(file)
		if err != nil {
			return nil, fmt.Errorf("lexical.ExtractWordsFromHTML > %w", err)
		}
		return words, nil
	}

	words := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan > %w", err)
	}
	return words, nil
}

// LoadResponses reads a collected responses file. A missing file is empty.
func LoadResponses(path string) (map[string]string, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	responses := map[string]string{}
	if len(bytes.TrimSpace(contents)) == 0 {
		return responses, nil
	}
	if err := json.Unmarshal(contents, &responses); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return responses, nil
}

// SaveResponses writes the responses as indented JSON without HTML escaping.
func SaveResponses(path string, responses map[string]string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(responses); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll > %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	return nil
}
