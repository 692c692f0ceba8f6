// Package cli renders lookup results on a terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

// ResultPrinter writes a ParseResult with the same sections as the HTML
// popup: hints, forms, entries and general notes.
type ResultPrinter struct {
	writer  io.Writer
	bold    *color.Color
	italic  *color.Color
	pos     *color.Color
	hint    *color.Color
	failure *color.Color
}

func NewResultPrinter(writer io.Writer) *ResultPrinter {
	return &ResultPrinter{
		writer:  writer,
		bold:    color.New(color.Bold),
		italic:  color.New(color.Italic),
		pos:     color.New(color.FgCyan),
		hint:    color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
}

// Print writes result under a heading for the looked-up word.
func (p *ResultPrinter) Print(word string, result latinwords.ParseResult) error {
	if _, err := fmt.Fprintln(p.writer, p.bold.Sprint(word)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	for _, hint := range result.TwoWordsHints() {
		if _, err := p.hint.Fprintln(p.writer, hint); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}

	if result.IsEmpty() {
		if _, err := p.failure.Fprintln(p.writer, result.ErrorMessage()); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	var b strings.Builder
	if len(result.GrammaticalForms) > 0 {
		b.WriteString("Grammatical forms:\n")
		for _, form := range result.GrammaticalForms {
			fmt.Fprintf(&b, "  %s %s %s\n", form.InflectedForm, p.pos.Sprint(form.PartOfSpeech), form.Codes)
		}
	}

	for i, entry := range result.Entries {
		if i > 0 || len(result.GrammaticalForms) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", p.bold.Sprint(entry.Lemma), p.pos.Sprint(entry.PartOfSpeech))
		if entry.Details != "" {
			fmt.Fprintf(&b, "  %s\n", p.italic.Sprint(entry.Details))
		}
		if len(entry.Definitions) == 0 {
			b.WriteString("  No definitions provided\n")
			continue
		}
		for _, definition := range entry.Definitions {
			fmt.Fprintf(&b, "  - %s\n", definition)
		}
	}

	if notes := result.GeneralNotes(); len(notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range notes {
			fmt.Fprintf(&b, "  %s\n", note)
		}
	}

	if _, err := io.WriteString(p.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}
