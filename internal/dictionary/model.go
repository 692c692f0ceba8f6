package dictionary

import (
	"encoding/json"
	"time"
)

// SourceTypeLatinWords is the source type stored for latin-words.com responses.
const SourceTypeLatinWords = "latin_words"

// ResponseRecord is a raw service response persisted in the database.
type ResponseRecord struct {
	Word       string          `db:"word" yaml:"word"`
	SourceType string          `db:"source_type" yaml:"source_type"`
	SourceURL  string          `db:"source_url" yaml:"source_url"`
	Response   json.RawMessage `db:"response" yaml:"response"`
	CreatedAt  time.Time       `db:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" yaml:"updated_at"`
}

// MarshalYAML serializes ResponseRecord with Response as a JSON string.
func (r ResponseRecord) MarshalYAML() (interface{}, error) {
	return &struct {
		Word       string    `yaml:"word"`
		SourceType string    `yaml:"source_type"`
		SourceURL  string    `yaml:"source_url"`
		Response   string    `yaml:"response"`
		CreatedAt  time.Time `yaml:"created_at"`
		UpdatedAt  time.Time `yaml:"updated_at"`
	}{
		Word:       r.Word,
		SourceType: r.SourceType,
		SourceURL:  r.SourceURL,
		Response:   string(r.Response),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
