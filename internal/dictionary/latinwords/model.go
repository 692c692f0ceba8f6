package latinwords

import "strings"

const (
	NoteNotFound      = "Word not found in dictionary."
	NoteNoParseable   = "No parseable information found."
	NoteInvalidFormat = "Invalid API response format"

	// NoteTwoWordsPrefix starts the note emitted for a "Two words" hint line.
	NoteTwoWordsPrefix = "Input may be two words combined: "
	// NoteOrphanedPrefix starts the note emitted for a definition-like line
	// seen while no entry was open.
	NoteOrphanedPrefix = "Orphaned line: "
)

// DictionaryEntry is one headword sense.
type DictionaryEntry struct {
	Lemma        string   `json:"lemma" yaml:"lemma"`
	PartOfSpeech string   `json:"partOfSpeech" yaml:"part_of_speech"`
	Details      string   `json:"details" yaml:"details"`
	Notes        []string `json:"notes" yaml:"notes"`
	Definitions  []string `json:"definitions" yaml:"definitions"`
}

// GrammaticalForm is one morphological parse of the queried surface form.
type GrammaticalForm struct {
	InflectedForm string `json:"inflectedForm" yaml:"inflected_form"`
	PartOfSpeech  string `json:"partOfSpeech" yaml:"part_of_speech"`
	Codes         string `json:"codes" yaml:"codes"`
}

// ParseResult is the structured form of one response.
type ParseResult struct {
	Entries          []DictionaryEntry `json:"entries" yaml:"entries"`
	GrammaticalForms []GrammaticalForm `json:"grammaticalForms" yaml:"grammatical_forms"`
	Notes            []string          `json:"notes" yaml:"notes"`
	Unknown          bool              `json:"unknown" yaml:"unknown"`
}

func newParseResult() ParseResult {
	return ParseResult{
		Entries:          make([]DictionaryEntry, 0),
		GrammaticalForms: make([]GrammaticalForm, 0),
		Notes:            make([]string, 0),
	}
}

// IsEmpty reports whether the result has neither entries nor forms.
func (r ParseResult) IsEmpty() bool {
	return len(r.Entries) == 0 && len(r.GrammaticalForms) == 0
}

// ErrorMessage returns the message to show instead of entries when the result
// is empty.
func (r ParseResult) ErrorMessage() string {
	if r.Unknown {
		return NoteNotFound
	}
	if notes := r.GeneralNotes(); len(notes) > 0 {
		return strings.Join(notes, " ")
	}
	return "No definition found."
}

// GeneralNotes returns the notes that are shown in the general notes section:
// everything except the not-found note, two-words hints and orphaned lines.
func (r ParseResult) GeneralNotes() []string {
	notes := make([]string, 0, len(r.Notes))
	for _, note := range r.Notes {
		if isSpecialNote(note) {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

// TwoWordsHints returns the hints emitted for "Two words" lines.
func (r ParseResult) TwoWordsHints() []string {
	hints := make([]string, 0)
	for _, note := range r.Notes {
		if strings.HasPrefix(note, NoteTwoWordsPrefix) {
			hints = append(hints, note)
		}
	}
	return hints
}

func isSpecialNote(note string) bool {
	return note == NoteNotFound ||
		strings.HasPrefix(note, NoteTwoWordsPrefix) ||
		strings.HasPrefix(note, NoteOrphanedPrefix)
}
