package latinwords

import (
	"regexp"
	"strings"
)

// LineKind is the classification of one response line.
type LineKind int

const (
	LineSeparator LineKind = iota
	LineUnknown
	LineTwoWords
	LineWordModification
	LineEntryHeader
	LineGrammaticalForm
	LineDefinition
)

var lineKindNames = map[LineKind]string{
	LineSeparator:        "separator",
	LineUnknown:          "unknown",
	LineTwoWords:         "two_words",
	LineWordModification: "word_modification",
	LineEntryHeader:      "entry_header",
	LineGrammaticalForm:  "grammatical_form",
	LineDefinition:       "definition",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// EntryHeader is the content of a dictionary-entry header line.
type EntryHeader struct {
	Lemma        string
	PartOfSpeech string
	Details      string
}

// Line is one trimmed response line and its classification.
// Header is set only for LineEntryHeader and Form only for LineGrammaticalForm.
type Line struct {
	Kind   LineKind
	Text   string
	Header EntryHeader
	Form   GrammaticalForm
}

var (
	separatorPattern       = regexp.MustCompile(`^[\s*=\-]*$`)
	unknownPattern         = regexp.MustCompile(`={2,}\s*UNKNOWN\b`)
	entryHeaderPattern     = regexp.MustCompile(`^(.+?)\s+(ADJ|N|V|ADV|PREP|CONJ|INTERJ|PRON|NUM|VPAR|TACKON|SUFFIX|PREFIX)(?:\s+(.*))?$`)
	grammarCodesPattern    = regexp.MustCompile(`^[A-Za-z0-9\s]*$`)
	grammaticalFormPattern = regexp.MustCompile(`^(\S+)\s+([A-Z]+)\s+(.+)$`)

	bracketTagPattern  = regexp.MustCompile(`\[[^\]]*\]`)
	qualifierPattern   = regexp.MustCompile(`(?i)\b(?:Late|Classic|Early|Medieval|NeoLatin|uncommon|veryrare|lesser|Pliny)\b`)
	headerNotePattern  = regexp.MustCompile(`\[[^\]]*\]|(?i:\b(?:Late|Classic|Early|Medieval|NeoLatin|uncommon|veryrare|lesser|Pliny)\b)`)
	minInlineDefLength = 5
)

// Parts of speech whose header line may carry the definition itself.
var inlineDefinitionPartsOfSpeech = map[string]bool{
	"PREP":   true,
	"ADV":    true,
	"CONJ":   true,
	"TACKON": true,
}

type rule struct {
	kind  LineKind
	match func(text string) (Line, bool)
}

// rules are tried in order and the first match wins. Several patterns overlap,
// so the order is part of the grammar.
var rules = []rule{
	{kind: LineSeparator, match: matchPredicate(isSeparator)},
	{kind: LineUnknown, match: matchPredicate(unknownPattern.MatchString)},
	{kind: LineTwoWords, match: matchPredicate(isTwoWordsHint)},
	{kind: LineWordModification, match: matchPredicate(isWordModification)},
	{kind: LineEntryHeader, match: matchEntryHeader},
	{kind: LineGrammaticalForm, match: matchGrammaticalForm},
}

// ClassifyLine trims one raw response line and classifies it.
func ClassifyLine(raw string) Line {
	text := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	for _, r := range rules {
		if line, ok := r.match(text); ok {
			line.Kind = r.kind
			line.Text = text
			return line
		}
	}
	return Line{Kind: LineDefinition, Text: text}
}

// ClassifyMessage classifies every line of a response message.
func ClassifyMessage(message string) []Line {
	rawLines := strings.Split(message, "\n")
	lines := make([]Line, 0, len(rawLines))
	for _, raw := range rawLines {
		lines = append(lines, ClassifyLine(raw))
	}
	return lines
}

func matchPredicate(predicate func(string) bool) func(string) (Line, bool) {
	return func(text string) (Line, bool) {
		return Line{}, predicate(text)
	}
}

func isSeparator(text string) bool {
	return separatorPattern.MatchString(text)
}

func isTwoWordsHint(text string) bool {
	return strings.HasPrefix(text, "Two words")
}

func isWordModification(text string) bool {
	return strings.HasPrefix(text, "Word mod") || strings.HasPrefix(text, "Syncope")
}

func matchEntryHeader(text string) (Line, bool) {
	header, ok := parseEntryHeader(text)
	return Line{Header: header}, ok
}

func parseEntryHeader(text string) (EntryHeader, bool) {
	m := entryHeaderPattern.FindStringSubmatch(text)
	if m == nil {
		return EntryHeader{}, false
	}
	header := EntryHeader{
		Lemma:        strings.TrimSpace(m[1]),
		PartOfSpeech: m[2],
		Details:      strings.TrimSpace(m[3]),
	}
	if looksLikeGrammaticalAnalysis(header.PartOfSpeech, header.Details) {
		return EntryHeader{}, false
	}
	return header, true
}

// looksLikeGrammaticalAnalysis rejects a header match whose part of speech is a
// single letter followed only by letters, digits and spaces. Analysis lines
// such as "ab N 1 1 ABL S F" share the header shape, and the single-letter
// gender and case codes (F, M, N) collide with the parts of speech N and V.
// Real headers carry a declension in parentheses or a bracketed tag.
// A short genuine header with no such marker is misread as an analysis line.
func looksLikeGrammaticalAnalysis(partOfSpeech, rest string) bool {
	return len(partOfSpeech) == 1 && grammarCodesPattern.MatchString(rest)
}

func matchGrammaticalForm(text string) (Line, bool) {
	m := grammaticalFormPattern.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	return Line{Form: GrammaticalForm{
		InflectedForm: m[1],
		PartOfSpeech:  m[2],
		Codes:         strings.TrimSpace(m[3]),
	}}, true
}

// headerNotes collects bracketed usage tags and frequency/era qualifiers from
// the details of a header, in order of appearance.
func headerNotes(details string) []string {
	notes := headerNotePattern.FindAllString(details, -1)
	if notes == nil {
		return []string{}
	}
	return notes
}

// inlineDefinition returns the definition text carried on the header line of
// particles, which the service prints without a separate definition line.
func inlineDefinition(header EntryHeader) (string, bool) {
	if !inlineDefinitionPartsOfSpeech[header.PartOfSpeech] {
		return "", false
	}
	rest := bracketTagPattern.ReplaceAllString(header.Details, " ")
	rest = qualifierPattern.ReplaceAllString(rest, " ")
	rest = strings.Join(strings.Fields(rest), " ")
	if len([]rune(rest)) <= minInlineDefLength {
		return "", false
	}
	return rest, true
}
