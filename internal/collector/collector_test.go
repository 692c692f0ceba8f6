package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	mock_dictionary "github.com/at-ishikawa/latinlookup/internal/mocks/dictionary"
)

func TestCollector_Collect(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]string
		words    []string
		setup    func(m *mock_dictionary.MockTransport)
		want     map[string]string
		wantStat Stats
	}{
		{
			name:  "fetches new words with macron-stripped keys",
			words: []string{"amō", "est"},
			setup: func(m *mock_dictionary.MockTransport) {
				gomock.InOrder(
					m.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(`{"status":"ok","message":"amo <V>"}`), nil),
					m.EXPECT().Fetch(gomock.Any(), "est").Return([]byte(`{"status":"ok","message":"est"}`), nil),
				)
			},
			want:     map[string]string{"amō": "amo <V>", "est": "est"},
			wantStat: Stats{Total: 2, Fetched: 2},
		},
		{
			name:     "skips existing words",
			existing: map[string]string{"amo": "cached"},
			words:    []string{"amo", "sum", "sum"},
			setup: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "sum").Return([]byte(`{"status":"ok","message":"sum"}`), nil).Times(1)
			},
			want:     map[string]string{"amo": "cached", "sum": "sum"},
			wantStat: Stats{Total: 3, Existing: 1, Fetched: 1},
		},
		{
			name:  "records failures",
			words: []string{"amo", "est", "sum"},
			setup: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return(nil, &dictionary.StatusError{StatusCode: 503, Body: "busy"})
				m.EXPECT().Fetch(gomock.Any(), "est").Return([]byte("<html>"), nil)
				m.EXPECT().Fetch(gomock.Any(), "sum").Return(nil, errors.New("connection refused"))
			},
			want: map[string]string{
				"amo": "ERROR: Status code 503",
				"est": "ERROR: Invalid JSON response",
				"sum": "ERROR: Request failed - transport.Fetch > connection refused",
			},
			wantStat: Stats{Total: 3, Failed: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			transport := mock_dictionary.NewMockTransport(ctrl)
			tt.setup(transport)

			output := filepath.Join(t.TempDir(), "responses.json")
			if tt.existing != nil {
				require.NoError(t, SaveResponses(output, tt.existing))
			}

			stats, err := NewCollector(transport, 0).Collect(context.Background(), tt.words, output)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStat, stats)

			got, err := LoadResponses(output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollector_Collect_Interrupted(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	transport.EXPECT().Fetch(gomock.Any(), "amo").DoAndReturn(func(ctx context.Context, term string) ([]byte, error) {
		cancel()
		return []byte(`{"status":"ok","message":"amo"}`), nil
	})

	output := filepath.Join(t.TempDir(), "responses.json")
	stats, err := NewCollector(transport, time.Hour).Collect(ctx, []string{"amo", "est"}, output)
	require.NoError(t, err)

	assert.True(t, stats.Interrupted)
	got, err := LoadResponses(output)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{}, got, "a response that arrives after cancellation is dropped")
}

func TestCollector_Collect_InterruptedDuringDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)
	transport.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(`{"status":"ok","message":"amo"}`), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	output := filepath.Join(t.TempDir(), "responses.json")
	stats, err := NewCollector(transport, time.Hour).Collect(ctx, []string{"amo", "est"}, output)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 2, Fetched: 1, Interrupted: true}, stats)
	got, err := LoadResponses(output)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"amo": "amo"}, got)
}

func TestLoadWords(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		contents string
		want     []string
	}{
		{
			name:     "text file",
			fileName: "words.txt",
			contents: "amo\n\n  est  \nGallia\n",
			want:     []string{"amo", "est", "Gallia"},
		},
		{
			name:     "html page",
			fileName: "page.html",
			contents: `<html><body><script>var x;</script><p>Gallia est omnis divisa, Gallia.</p></body></html>`,
			want:     []string{"Gallia", "est", "omnis", "divisa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0644))

			got, err := LoadWords(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadWords_MissingFile(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadResponses(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadResponses(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, got)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte("{"), 0644))
	_, err = LoadResponses(invalid)
	assert.Error(t, err)
}

func TestSaveResponses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "responses.json")
	require.NoError(t, SaveResponses(path, map[string]string{"rēgīna": "a <queen>", "amo": "love"}))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"amo\": \"love\",\n  \"rēgīna\": \"a <queen>\"\n}\n", string(contents))
}
