package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/latinlookup/internal/lexical"
)

// PDFTheme is the color theme of an exported report.
type PDFTheme string

const (
	PDFThemeLight PDFTheme = "light"
	PDFThemeDark  PDFTheme = "dark"
)

func (theme PDFTheme) renderTheme() (mdtopdf.Theme, error) {
	switch theme {
	case "", PDFThemeLight:
		return mdtopdf.LIGHT, nil
	case PDFThemeDark:
		return mdtopdf.DARK, nil
	}
	return 0, fmt.Errorf("unknown pdf theme: %s", theme)
}

// PDFOptions controls how a vocabulary report is exported.
type PDFOptions struct {
	Theme     PDFTheme
	Landscape bool
}

// WritePDF exports the markdown vocabulary report at markdownPath to a PDF
// with the same base name and returns the PDF path.
//
// The built-in PDF fonts only cover cp1252, which has no macron vowels, so
// macrons are folded to plain vowels in the exported copy.
func WritePDF(markdownPath string, options PDFOptions) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("report file must have .md extension: %s", markdownPath)
	}
	theme, err := options.Theme.renderTheme()
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	content = []byte(lexical.StripMacrons(string(content)))

	orientation := "P"
	if options.Landscape {
		orientation = "L"
	}
	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer(orientation, "A4", pdfPath, "", []mdtopdf.RenderOption{
		mdtopdf.WithUnicodeTranslator("cp1252"),
	}, theme)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
