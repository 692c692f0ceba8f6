package latinwords

import "strings"

// Session folds classified lines into a ParseResult. At most one entry is open
// at a time, and lines between two headers become that entry's definitions.
// A Session is not safe for concurrent use.
type Session struct {
	result  ParseResult
	current *DictionaryEntry
	buffer  []string
}

func NewSession() *Session {
	return &Session{result: newParseResult()}
}

// Feed classifies a raw line and applies it.
func (s *Session) Feed(raw string) {
	s.Apply(ClassifyLine(raw))
}

func (s *Session) Apply(line Line) {
	switch line.Kind {
	case LineSeparator:
	case LineUnknown:
		// later banners repeat the same verdict
		if !s.result.Unknown {
			s.result.Notes = append(s.result.Notes, NoteNotFound)
		}
		s.result.Unknown = true
		s.flush()
	case LineTwoWords:
		s.result.Notes = append(s.result.Notes, NoteTwoWordsPrefix+line.Text)
	case LineWordModification:
		if s.current != nil {
			s.current.Notes = append(s.current.Notes, line.Text)
			return
		}
		s.result.Notes = append(s.result.Notes, line.Text)
	case LineEntryHeader:
		s.flush()
		s.open(line.Header)
	case LineGrammaticalForm:
		s.result.GrammaticalForms = append(s.result.GrammaticalForms, line.Form)
	case LineDefinition:
		if s.current != nil {
			s.buffer = append(s.buffer, line.Text)
			return
		}
		s.result.Notes = append(s.result.Notes, NoteOrphanedPrefix+line.Text)
	}
}

// Finish closes the open entry and returns the result. The session starts
// over afterwards.
func (s *Session) Finish() ParseResult {
	s.flush()
	if s.result.IsEmpty() && !s.result.Unknown && !hasExplanatoryNote(s.result.Notes) {
		s.result.Notes = append(s.result.Notes, NoteNoParseable)
	}

	result := s.result
	s.result = newParseResult()
	return result
}

func (s *Session) open(header EntryHeader) {
	s.current = &DictionaryEntry{
		Lemma:        header.Lemma,
		PartOfSpeech: header.PartOfSpeech,
		Details:      header.Details,
		Notes:        headerNotes(header.Details),
		Definitions:  make([]string, 0),
	}
	if definition, ok := inlineDefinition(header); ok {
		s.buffer = append(s.buffer, definition)
	}
}

func (s *Session) flush() {
	if s.current == nil {
		return
	}
	s.current.Definitions = splitDefinitions(s.buffer)
	s.result.Entries = append(s.result.Entries, *s.current)
	s.current = nil
	s.buffer = nil
}

// splitDefinitions joins the buffered lines and splits them on semicolons.
func splitDefinitions(lines []string) []string {
	definitions := make([]string, 0)
	for _, piece := range strings.Split(strings.Join(lines, " "), ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" || isSeparator(piece) {
			continue
		}
		definitions = append(definitions, piece)
	}
	return definitions
}

func hasExplanatoryNote(notes []string) bool {
	for _, note := range notes {
		if !strings.HasPrefix(note, NoteOrphanedPrefix) {
			return true
		}
	}
	return false
}
