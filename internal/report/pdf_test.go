package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfTestReport = "# Book I\n\n## amō\n\n### amo, amare, amavi, amatus (V)\n\n- love\n- be fond of\n\nForms: PRES ACTIVE IND 1 S\n"

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name       string
		setupFile  func(t *testing.T) string
		options    PDFOptions
		wantErrMsg string
	}{
		{
			name: "invalid extension",
			setupFile: func(t *testing.T) string {
				return "report.txt"
			},
			wantErrMsg: "report file must have .md extension",
		},
		{
			name: "extension only as a directory suffix",
			setupFile: func(t *testing.T) string {
				return filepath.Join("reports.md", "vocabulary")
			},
			wantErrMsg: "report file must have .md extension",
		},
		{
			name: "unknown theme",
			setupFile: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "vocabulary.md")
			},
			options:    PDFOptions{Theme: "sepia"},
			wantErrMsg: "unknown pdf theme: sepia",
		},
		{
			name: "file not found",
			setupFile: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.md")
			},
			wantErrMsg: "os.ReadFile",
		},
		{
			name: "default options",
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "vocabulary.md")
				require.NoError(t, os.WriteFile(path, []byte(pdfTestReport), 0644))
				return path
			},
		},
		{
			name: "dark landscape",
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "vocabulary.md")
				require.NoError(t, os.WriteFile(path, []byte(pdfTestReport), 0644))
				return path
			},
			options: PDFOptions{Theme: PDFThemeDark, Landscape: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markdownPath := tt.setupFile(t)
			got, err := WritePDF(markdownPath, tt.options)
			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "vocabulary.pdf", filepath.Base(got))
			assert.Equal(t, filepath.Dir(markdownPath), filepath.Dir(got))

			info, err := os.Stat(got)
			require.NoError(t, err)
			assert.Positive(t, info.Size())

			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.True(t, len(content) > 4 && string(content[:5]) == "%PDF-")
		})
	}
}

func TestPDFTheme_RenderTheme(t *testing.T) {
	for _, theme := range []PDFTheme{"", PDFThemeLight, PDFThemeDark} {
		_, err := theme.renderTheme()
		assert.NoError(t, err, theme)
	}
	_, err := PDFTheme("blue").renderTheme()
	assert.Error(t, err)
}
