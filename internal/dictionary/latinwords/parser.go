package latinwords

// Parse converts a service payload into a ParseResult. A payload that is not
// well formed yields an empty result carrying NoteInvalidFormat.
func Parse(response RawResponse) ParseResult {
	if !response.IsWellFormed() {
		result := newParseResult()
		result.Notes = append(result.Notes, NoteInvalidFormat)
		return result
	}
	return ParseMessage(response.Message)
}

// ParseMessage parses the plain-text analysis of a successful response.
func ParseMessage(message string) ParseResult {
	session := NewSession()
	for _, line := range ClassifyMessage(message) {
		session.Apply(line)
	}
	return session.Finish()
}
