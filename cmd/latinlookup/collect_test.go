package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/latinlookup/internal/testutil"
)

func TestNewCollectCommand(t *testing.T) {
	server := testutil.NewDictionaryServer(t, map[string]string{
		"amo": "amo, amare, amavi, amatus  V (1st)  [XXXAO]\nlove;\n",
	})
	tmpDir := setupTestConfig(t, server.URL, "collector:\n  delay: 0s\n")

	wordsPath := filepath.Join(tmpDir, "words.txt")
	require.NoError(t, os.WriteFile(wordsPath, []byte("amo\n\nsum\n"), 0644))
	outputPath := filepath.Join(tmpDir, "responses.json")

	var stdout bytes.Buffer
	cmd := newCollectCommand()
	cmd.SetArgs([]string{wordsPath, "--output", outputPath})
	cmd.SetOut(&stdout)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "Fetched:  1\n")
	assert.Contains(t, stdout.String(), "Failed:   1\n")

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, map[string]string{
		"amo": "amo, amare, amavi, amatus  V (1st)  [XXXAO]\nlove;\n",
		"sum": "ERROR: Status code 503",
	}, got)
}
