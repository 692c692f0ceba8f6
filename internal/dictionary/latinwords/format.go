package latinwords

import (
	"fmt"
	"strings"
)

const noDefinitionsPlaceholder = "No definitions provided"

var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// FormatHTML renders a result as an HTML fragment for the lookup popup.
func FormatHTML(result ParseResult) string {
	var b strings.Builder

	for _, hint := range result.TwoWordsHints() {
		fmt.Fprintf(&b, `<div class="latin-lookup-hint">%s</div>`, escapeMarkup(hint))
	}

	if result.IsEmpty() {
		fmt.Fprintf(&b, `<div class="latin-lookup-error">%s</div>`, escapeMarkup(result.ErrorMessage()))
		return b.String()
	}

	if len(result.GrammaticalForms) > 0 {
		b.WriteString(`<div class="latin-lookup-forms"><div class="latin-lookup-section-title">Grammatical forms</div><ul>`)
		for _, form := range result.GrammaticalForms {
			fmt.Fprintf(&b, `<li><span class="latin-lookup-form">%s</span> <span class="latin-lookup-pos">%s</span> %s</li>`,
				escapeMarkup(form.InflectedForm), escapeMarkup(form.PartOfSpeech), escapeMarkup(form.Codes))
		}
		b.WriteString(`</ul></div>`)
	}

	for i, entry := range result.Entries {
		if i > 0 {
			b.WriteString(`<hr class="latin-lookup-separator">`)
		}
		writeEntry(&b, entry)
	}

	if notes := result.GeneralNotes(); len(notes) > 0 {
		b.WriteString(`<div class="latin-lookup-notes"><div class="latin-lookup-section-title">Notes</div><ul>`)
		for _, note := range notes {
			fmt.Fprintf(&b, `<li>%s</li>`, escapeMarkup(note))
		}
		b.WriteString(`</ul></div>`)
	}
	return b.String()
}

func writeEntry(b *strings.Builder, entry DictionaryEntry) {
	b.WriteString(`<div class="latin-lookup-entry">`)
	fmt.Fprintf(b, `<div class="latin-lookup-lemma">%s <span class="latin-lookup-pos">%s</span></div>`,
		escapeMarkup(entry.Lemma), escapeMarkup(entry.PartOfSpeech))

	grammar := entry.Details
	if extra := notesMissingFromDetails(entry); len(extra) > 0 {
		grammar = strings.TrimSpace(grammar + " " + strings.Join(extra, " "))
	}
	if grammar != "" {
		fmt.Fprintf(b, `<div class="latin-lookup-grammar">%s</div>`, escapeMarkup(grammar))
	}

	if len(entry.Definitions) == 0 {
		fmt.Fprintf(b, `<div class="latin-lookup-empty">%s</div>`, noDefinitionsPlaceholder)
	} else {
		b.WriteString(`<ul class="latin-lookup-definitions">`)
		for _, definition := range entry.Definitions {
			fmt.Fprintf(b, `<li>%s</li>`, escapeMarkup(definition))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div>`)
}

// notesMissingFromDetails returns the entry notes that are not already part of
// the details text, such as word-modification hints.
func notesMissingFromDetails(entry DictionaryEntry) []string {
	var extra []string
	for _, note := range entry.Notes {
		if !strings.Contains(entry.Details, note) {
			extra = append(extra, note)
		}
	}
	return extra
}
