package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const cacheFileExtension = ".json"

// FileCache stores one raw response per lookup key as <key>.json.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) filePath(key string) string {
	return filepath.Join(cache.rootDir, key+cacheFileExtension)
}

// Get implements ResponseStore.
func (cache *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	contents, err := cache.read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache.read > %w", err)
	}
	return contents, true, nil
}

// Put implements ResponseStore.
func (cache *FileCache) Put(_ context.Context, key string, body []byte) error {
	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}

	file, err := os.Create(cache.filePath(key))
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(body); err != nil {
		return fmt.Errorf("file.Write > %w", err)
	}
	return nil
}

// Keys returns the cached keys in name order. A missing directory has none.
func (cache *FileCache) Keys() ([]string, error) {
	entries, err := os.ReadDir(cache.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir > %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != cacheFileExtension {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), cacheFileExtension))
	}
	sort.Strings(keys)
	return keys, nil
}

func (cache *FileCache) read(key string) ([]byte, error) {
	file, err := os.Open(cache.filePath(key))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
