// Package testutil provides shared test helpers for config files and a fake
// latin-words.com server.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig writes a config file that looks words up at baseURL without
// persisting responses. extra is appended as-is.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir, baseURL, extra string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "reports"), 0755))

	configContent := fmt.Sprintf(`dictionaries:
  latin_words:
    base_url: %s
    retry_attempts: 0
    store: none
outputs:
  report_directory: %s
%s`,
		baseURL,
		filepath.Join(tmpDir, "reports"),
		extra,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewDictionaryServer starts a translate endpoint answering queries from
// messages. Unknown queries get a 503.
func NewDictionaryServer(t *testing.T, messages map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		message, ok := messages[r.URL.Query().Get("query")]
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("busy"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","message":%q}`, message)
	}))
	t.Cleanup(server.Close)
	return server
}
