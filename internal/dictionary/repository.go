package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary ResponseRepository

// ResponseRepository defines operations for managing persisted responses.
type ResponseRepository interface {
	FindAll(ctx context.Context) ([]ResponseRecord, error)
	FindByWord(ctx context.Context, word string) (*ResponseRecord, error)
	Upsert(ctx context.Context, record *ResponseRecord) error
	BatchUpsert(ctx context.Context, records []*ResponseRecord) error
}

// DBResponseRepository implements ResponseRepository using MySQL.
type DBResponseRepository struct {
	db *sqlx.DB
}

func NewDBResponseRepository(db *sqlx.DB) *DBResponseRepository {
	return &DBResponseRepository{db: db}
}

// FindAll returns all responses ordered by word.
func (r *DBResponseRepository) FindAll(ctx context.Context) ([]ResponseRecord, error) {
	var records []ResponseRecord
	if err := r.db.SelectContext(ctx, &records, "SELECT * FROM dictionary_responses ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dictionary_responses) > %w", err)
	}
	return records, nil
}

// FindByWord returns the response for a word, or nil if there is none.
func (r *DBResponseRepository) FindByWord(ctx context.Context, word string) (*ResponseRecord, error) {
	var record ResponseRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM dictionary_responses WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(dictionary_response) > %w", err)
	}
	return &record, nil
}

// Upsert inserts or updates a response.
func (r *DBResponseRepository) Upsert(ctx context.Context, record *ResponseRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dictionary_responses (word, source_type, source_url, response)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE source_type = VALUES(source_type), source_url = VALUES(source_url), response = VALUES(response)`,
		record.Word, record.SourceType, record.SourceURL, record.Response)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert dictionary_response) > %w", err)
	}
	return nil
}

// BatchUpsert inserts or updates records with a single statement.
func (r *DBResponseRepository) BatchUpsert(ctx context.Context, records []*ResponseRecord) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*4)
	for _, record := range records {
		placeholders = append(placeholders, "(?, ?, ?, ?)")
		args = append(args, record.Word, record.SourceType, record.SourceURL, record.Response)
	}
	query := `INSERT INTO dictionary_responses (word, source_type, source_url, response)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON DUPLICATE KEY UPDATE source_type = VALUES(source_type), source_url = VALUES(source_url), response = VALUES(response)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db.ExecContext(batch upsert dictionary_responses) > %w", err)
	}
	return nil
}
