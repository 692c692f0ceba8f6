// Package latinwords parses the plain-text morphological analysis returned by
// the latin-words.com translate endpoint (a Whitaker's Words front end).
package latinwords

import (
	"encoding/json"
	"fmt"
)

// StatusOK is the status the service reports for a successful lookup.
const StatusOK = "ok"

// RawResponse is the JSON payload returned by the service.
type RawResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// malformed is set when the payload carried a status or message that is
	// not a JSON string.
	malformed bool
}

// UnmarshalJSON accepts any status and message values and records whether they
// were strings, so that Parse can report a malformed payload instead of
// failing to decode.
func (r *RawResponse) UnmarshalJSON(data []byte) error {
	var payload struct {
		Status  json.RawMessage `json:"status"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}

	*r = RawResponse{}
	status, ok, err := decodeString(payload.Status)
	if err != nil {
		return fmt.Errorf("decodeString(status) > %w", err)
	}
	if !ok {
		r.malformed = true
		return nil
	}
	r.Status = status

	message, ok, err := decodeString(payload.Message)
	if err != nil {
		return fmt.Errorf("decodeString(message) > %w", err)
	}
	if !ok {
		r.malformed = true
		return nil
	}
	r.Message = message
	return nil
}

// decodeString returns false when the value is missing or not a JSON string.
func decodeString(value json.RawMessage) (string, bool, error) {
	if len(value) == 0 || value[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return s, true, nil
}

// IsWellFormed reports whether the payload can be parsed.
func (r RawResponse) IsWellFormed() bool {
	return r.Status == StatusOK && !r.malformed
}
