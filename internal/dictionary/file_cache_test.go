package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_filePath(t *testing.T) {
	tests := []struct {
		name     string
		rootDir  string
		key      string
		expected string
	}{
		{
			name:     "simple word",
			rootDir:  "latin_words",
			key:      "amo",
			expected: filepath.Join("latin_words", "amo.json"),
		},
		{
			name:     "capitalized word",
			rootDir:  "latin_words",
			key:      "Gallia",
			expected: filepath.Join("latin_words", "Gallia.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewFileCache(tt.rootDir)
			assert.Equal(t, tt.expected, cache.filePath(tt.key))
		})
	}
}

func TestFileCache_GetPut(t *testing.T) {
	ctx := context.Background()
	cache := NewFileCache(filepath.Join(t.TempDir(), "nested", "latin_words"))

	_, ok, err := cache.Get(ctx, "amo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "amo", []byte(`{"status":"ok","message":"amo"}`)))

	got, ok, err := cache.Get(ctx, "amo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"status":"ok","message":"amo"}`, string(got))

	require.NoError(t, cache.Put(ctx, "amo", []byte(`{"status":"ok","message":"amare"}`)))
	got, _, err = cache.Get(ctx, "amo")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","message":"amare"}`, string(got))
}

func TestFileCache_Keys(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "json files in name order",
			files: []string{"est.json", "amo.json", "notes.txt"},
			want:  []string{"amo", "est"},
		},
		{
			name:  "empty directory",
			files: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
			}
			require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

			got, err := NewFileCache(dir).Keys()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileCache_Keys_MissingDirectory(t *testing.T) {
	got, err := NewFileCache(filepath.Join(t.TempDir(), "missing")).Keys()
	require.NoError(t, err)
	assert.Empty(t, got)
}
