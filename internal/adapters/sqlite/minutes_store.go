package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/secondary"
	"github.com/example/plenario/internal/templates"
)

// MinutesStore implements secondary.MinutesGenerator and secondary.MinutesReader.
// It renders a Markdown body from the sitting's outcome and stores it under a
// random reference.
type MinutesStore struct {
	db *sql.DB
}

// NewMinutesStore creates a new SQLite-backed minutes store.
func NewMinutesStore(db *sql.DB) *MinutesStore {
	return &MinutesStore{db: db}
}

var minutesTemplate = template.Must(template.New("minutes").Funcs(template.FuncMap{
	"date": func(s string) string {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return s
		}
		return t.Format("02/01/2006 15:04")
	},
}).Parse(mustMinutesTemplate()))

func mustMinutesTemplate() string {
	content, err := templates.GetMinutes()
	if err != nil {
		panic(err)
	}
	return content
}

// Generate renders and stores the minutes of a held sitting, returning the reference.
func (s *MinutesStore) Generate(ctx context.Context, draft *secondary.MinutesDraft) (string, error) {
	var body bytes.Buffer
	if err := minutesTemplate.Execute(&body, draft); err != nil {
		return "", fmt.Errorf("failed to render minutes: %w", err)
	}

	ref := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO minutes (ref, sitting_id, body) VALUES (?, ?, ?)",
		ref, draft.Sitting.ID, body.String(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store minutes: %w", err)
	}

	return ref, nil
}

// GetByRef retrieves stored minutes.
func (s *MinutesStore) GetByRef(ctx context.Context, ref string) (*secondary.MinutesRecord, error) {
	var createdAt sql.NullTime
	record := &secondary.MinutesRecord{}
	err := s.db.QueryRowContext(ctx,
		"SELECT ref, sitting_id, body, created_at FROM minutes WHERE ref = ?", ref,
	).Scan(&record.Ref, &record.SittingID, &record.Body, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("minutes %s not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

var (
	_ secondary.MinutesGenerator = (*MinutesStore)(nil)
	_ secondary.MinutesReader    = (*MinutesStore)(nil)
)
