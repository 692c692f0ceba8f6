package dictionary_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
	mock_dictionary "github.com/at-ishikawa/latinlookup/internal/mocks/dictionary"
)

const amoBody = `{"status":"ok","message":"amo, amare, amavi, amatus  V (1st)  [XXXAO]\nto love; to be fond of\n"}`

func TestReader_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		word           string
		setupTransport func(m *mock_dictionary.MockTransport)
		storedBody     string
		want           latinwords.ParseResult
		wantErr        bool
		wantStored     string
	}{
		{
			name: "fetches with the macron-stripped key",
			word: "amō",
			setupTransport: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(amoBody), nil)
			},
			want:       latinwords.ParseMessage("amo, amare, amavi, amatus  V (1st)  [XXXAO]\nto love; to be fond of\n"),
			wantStored: amoBody,
		},
		{
			name:           "stored response skips the transport",
			word:           "amo",
			setupTransport: func(m *mock_dictionary.MockTransport) {},
			storedBody:     amoBody,
			want:           latinwords.ParseMessage("amo, amare, amavi, amatus  V (1st)  [XXXAO]\nto love; to be fond of\n"),
			wantStored:     amoBody,
		},
		{
			name: "undecodable stored response is refetched",
			word: "amo",
			setupTransport: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(amoBody), nil)
			},
			storedBody: "<html>",
			want:       latinwords.ParseMessage("amo, amare, amavi, amatus  V (1st)  [XXXAO]\nto love; to be fond of\n"),
			wantStored: amoBody,
		},
		{
			name: "malformed payload is parsed but not stored",
			word: "amo",
			setupTransport: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(`{"status":"error","message":"busy"}`), nil)
			},
			want: latinwords.Parse(latinwords.RawResponse{Status: "error"}),
		},
		{
			name: "transport failure",
			word: "amo",
			setupTransport: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return(nil, &dictionary.StatusError{StatusCode: 503})
			},
			wantErr: true,
		},
		{
			name: "body that is not json",
			word: "amo",
			setupTransport: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte("<html>"), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			transport := mock_dictionary.NewMockTransport(ctrl)
			tt.setupTransport(transport)

			ctx := context.Background()
			store := dictionary.NewFileCache(t.TempDir())
			if tt.storedBody != "" {
				require.NoError(t, store.Put(ctx, "amo", []byte(tt.storedBody)))
			}
			cache := dictionary.NewMemoryCache()
			reader := dictionary.NewReader(transport, store, cache)

			got, err := reader.Lookup(ctx, tt.word)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, cache.Len(), "failures are not cached")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			cached, ok := cache.Get("amo")
			assert.True(t, ok)
			assert.Equal(t, tt.want, cached)

			stored, ok, err := store.Get(ctx, "amo")
			require.NoError(t, err)
			if tt.wantStored == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.wantStored, string(stored))
		})
	}
}

func TestReader_Lookup_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)
	transport.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(amoBody), nil).Times(1)

	reader := dictionary.NewReader(transport, nil, nil)
	first, err := reader.Lookup(context.Background(), "amo")
	require.NoError(t, err)
	second, err := reader.Lookup(context.Background(), "amō")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReader_Lookup_FailureIsRetriedNextTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().Fetch(gomock.Any(), "amo").Return(nil, errors.New("connection refused")),
		transport.EXPECT().Fetch(gomock.Any(), "amo").Return([]byte(amoBody), nil),
	)

	reader := dictionary.NewReader(transport, nil, nil)
	_, err := reader.Lookup(context.Background(), "amo")
	require.Error(t, err)

	got, err := reader.Lookup(context.Background(), "amo")
	require.NoError(t, err)
	assert.Len(t, got.Entries, 1)
}

func TestReader_Lookup_ConcurrentCallsShareOneRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)
	release := make(chan struct{})
	transport.EXPECT().Fetch(gomock.Any(), "amo").DoAndReturn(func(ctx context.Context, term string) ([]byte, error) {
		<-release
		return []byte(amoBody), nil
	}).Times(1)

	reader := dictionary.NewReader(transport, nil, nil)

	const callers = 5
	var wg sync.WaitGroup
	results := make([]latinwords.ParseResult, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = reader.Lookup(context.Background(), "amo")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i].Entries, 1)
	}
}

func TestReader_Lookup_CanceledCallerDoesNotFailOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock_dictionary.NewMockTransport(ctrl)
	started := make(chan struct{})
	release := make(chan struct{})
	transport.EXPECT().Fetch(gomock.Any(), "amo").DoAndReturn(func(ctx context.Context, term string) ([]byte, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte(amoBody), nil
	}).Times(1)

	reader := dictionary.NewReader(transport, nil, nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := reader.Lookup(firstCtx, "amo")
		firstErr <- err
	}()
	<-started

	type outcome struct {
		result latinwords.ParseResult
		err    error
	}
	second := make(chan outcome, 1)
	go func() {
		result, err := reader.Lookup(context.Background(), "amo")
		second <- outcome{result: result, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("canceled caller kept waiting for the shared request")
	}

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Len(t, got.result.Entries, 1)
}

func TestReader_LookupSelection(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		setup         func(m *mock_dictionary.MockTransport)
		wantCandidate string
		wantErr       error
	}{
		{
			name: "first valid token",
			text: "  Gallia,   est  ",
			setup: func(m *mock_dictionary.MockTransport) {
				m.EXPECT().Fetch(gomock.Any(), "Gallia").Return([]byte(`{"status":"ok","message":"======== UNKNOWN"}`), nil)
			},
			wantCandidate: "Gallia",
		},
		{
			name:    "no candidate",
			text:    "3 , a",
			setup:   func(m *mock_dictionary.MockTransport) {},
			wantErr: dictionary.ErrNoCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			transport := mock_dictionary.NewMockTransport(ctrl)
			tt.setup(transport)

			candidate, _, err := dictionary.NewReader(transport, nil, nil).LookupSelection(context.Background(), tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCandidate, candidate)
		})
	}
}
