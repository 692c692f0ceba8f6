package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/latinlookup/internal/testutil"
)

// setupTestConfig writes a config file pointing at baseURL and selects it for
// the commands under test.
func setupTestConfig(t *testing.T, baseURL string, extra string) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	cfgPath := testutil.SetupTestConfig(t, tmpDir, baseURL, extra)

	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
	return tmpDir
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "latinlookup", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"lookup", "parse", "collect", "report", "dictionary", "config"}, names)
}

func TestNewDictionaryCommand(t *testing.T) {
	cmd := newDictionaryCommand()

	assert.Equal(t, "dictionary", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "import", "export"}, names)

	importCommand, _, err := cmd.Find([]string{"import"})
	require.NoError(t, err)
	assert.NotNil(t, importCommand.Flags().Lookup("dry-run"))
	assert.NotNil(t, importCommand.Flags().Lookup("update-existing"))
	assert.NotNil(t, importCommand.Flags().Lookup("collected"))
}
