package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

// PostgresStore persists events. The required field list is stored as a jsonb
// array to keep its order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Event, error) {
	query := `
		SELECT id, name, required_user_fields, created_at
		FROM events
		WHERE id = $1
	`
	var ev Event
	var rawFields []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&ev.ID, &ev.Name, &rawFields, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := json.Unmarshal(rawFields, &ev.RequiredUserFields); err != nil {
		return nil, fmt.Errorf("decode required fields: %w", err)
	}
	return &ev, nil
}

func (s *PostgresStore) Put(ctx context.Context, ev *Event) error {
	rawFields, err := json.Marshal(ev.RequiredUserFields)
	if err != nil {
		return fmt.Errorf("encode required fields: %w", err)
	}
	query := `
		INSERT INTO events (id, name, required_user_fields, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			required_user_fields = EXCLUDED.required_user_fields
	`
	if _, err := s.db.ExecContext(ctx, query, ev.ID, ev.Name, rawFields, ev.CreatedAt); err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}
