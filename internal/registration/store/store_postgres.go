package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Omkar76/nscc-backend/internal/registration"
	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

// PostgresStore persists registration records in the event_registrations
// table. The jsonb union in Merge gives the field-level last-writer-wins
// semantics the engine relies on: concurrent merges with disjoint field sets
// converge to the union of both.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Exists(ctx context.Context, eventID, uid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND uid = $2)`
	if err := s.db.QueryRowContext(ctx, query, eventID, uid).Scan(&exists); err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Get(ctx context.Context, eventID, uid string) (*registration.Record, error) {
	query := `
		SELECT event_id, uid, email, email_verified, modified_at, fields
		FROM event_registrations
		WHERE event_id = $1 AND uid = $2
	`
	var rec registration.Record
	var rawFields []byte
	err := s.db.QueryRowContext(ctx, query, eventID, uid).Scan(
		&rec.EventID, &rec.UID, &rec.Email, &rec.EmailVerified, &rec.ModifiedAt, &rawFields,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if err := json.Unmarshal(rawFields, &rec.Fields); err != nil {
		return nil, fmt.Errorf("decode registration fields: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Merge(ctx context.Context, rec *registration.Record) error {
	rawFields, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("encode registration fields: %w", err)
	}
	query := `
		INSERT INTO event_registrations (event_id, uid, email, email_verified, modified_at, fields)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, uid) DO UPDATE SET
			email          = EXCLUDED.email,
			email_verified = EXCLUDED.email_verified,
			modified_at    = EXCLUDED.modified_at,
			fields         = event_registrations.fields || EXCLUDED.fields
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.EventID, rec.UID, rec.Email, rec.EmailVerified, rec.ModifiedAt, rawFields,
	)
	if err != nil {
		return fmt.Errorf("merge registration: %w", err)
	}
	return nil
}
