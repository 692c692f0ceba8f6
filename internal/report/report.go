// Package report renders looked-up words as a markdown vocabulary report.
package report

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

const fallbackTemplateName = "vocabulary-report.md.go.tmpl"

//go:embed templates/vocabulary-report.md.go.tmpl
var fallbackTemplate string

// Lookuper returns the parse result for a word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (latinwords.ParseResult, error)
}

// Report is the data passed to the report template.
type Report struct {
	Title   string
	Words   []Word
	Unknown []string
	Failed  []string
}

// Word is one looked-up word with entries.
type Word struct {
	Word    string
	Entries []latinwords.DictionaryEntry
	// Forms are the inflected forms of the analysis, e.g. "am.o V".
	Forms []string
}

// Build looks every word up. Words the service does not know and failed
// lookups are listed separately. Only a canceled context stops the build.
func Build(ctx context.Context, lookuper Lookuper, title string, words []string) (Report, error) {
	report := Report{
		Title:   title,
		Words:   make([]Word, 0, len(words)),
		Unknown: make([]string, 0),
		Failed:  make([]string, 0),
	}
	for _, word := range words {
		result, err := lookuper.Lookup(ctx, word)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Report{}, fmt.Errorf("lookuper.Lookup(%s) > %w", word, errors.Join(ctxErr, err))
			}
			slog.Default().Warn("failed to lookup word for report", "word", word, "error", err)
			report.Failed = append(report.Failed, word)
			continue
		}
		if result.IsEmpty() {
			report.Unknown = append(report.Unknown, word)
			continue
		}

		forms := make([]string, 0, len(result.GrammaticalForms))
		for _, form := range result.GrammaticalForms {
			forms = append(forms, form.InflectedForm+" "+form.PartOfSpeech)
		}
		report.Words = append(report.Words, Word{
			Word:    word,
			Entries: result.Entries,
			Forms:   forms,
		})
	}
	return report, nil
}

// Write renders the report with the template at templatePath, or the embedded
// template when templatePath is empty or cannot be parsed.
func Write(output io.Writer, templatePath string, report Report) error {
	tmpl, err := parseTemplateWithFallback(templatePath)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteFile renders the report into a markdown file in directory and returns
// its path.
func WriteFile(directory, fileName, templatePath string, report Report) (string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	path := filepath.Join(directory, fileName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := Write(file, templatePath, report); err != nil {
		return "", fmt.Errorf("Write() > %w", err)
	}
	return path, nil
}

func parseTemplateWithFallback(templatePath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
