package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

// PostgresStore persists profiles in the accounts table. Merge relies on the
// jsonb concatenation operator so a partial update never clobbers keys absent
// from the submission; that field-level union is what makes concurrent
// disjoint merges converge.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, uid string) (*Profile, error) {
	query := `
		SELECT uid, email, display_name, photo_url, fields
		FROM accounts
		WHERE uid = $1
	`
	var p Profile
	var rawFields []byte
	err := s.db.QueryRowContext(ctx, query, uid).Scan(
		&p.UID, &p.Email, &p.DisplayName, &p.PhotoURL, &rawFields,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	if err := json.Unmarshal(rawFields, &p.Fields); err != nil {
		return nil, fmt.Errorf("decode account fields: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Merge(ctx context.Context, uid string, fields map[string]string) error {
	fixed := map[string]string{}
	open := map[string]string{}
	for name, value := range fields {
		switch name {
		case AttrEmail, AttrDisplayName, AttrPhotoURL:
			fixed[name] = value
		default:
			open[name] = value
		}
	}

	rawOpen, err := json.Marshal(open)
	if err != nil {
		return fmt.Errorf("encode account fields: %w", err)
	}

	// Fixed attributes only move to a non-empty value; the jsonb union keeps
	// existing open fields that this merge does not mention.
	query := `
		INSERT INTO accounts (uid, email, display_name, photo_url, fields, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (uid) DO UPDATE SET
			email        = COALESCE(NULLIF(EXCLUDED.email, ''), accounts.email),
			display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), accounts.display_name),
			photo_url    = COALESCE(NULLIF(EXCLUDED.photo_url, ''), accounts.photo_url),
			fields       = accounts.fields || EXCLUDED.fields,
			updated_at   = now()
	`
	_, err = s.db.ExecContext(ctx, query,
		uid,
		fixed[AttrEmail],
		fixed[AttrDisplayName],
		fixed[AttrPhotoURL],
		rawOpen,
	)
	if err != nil {
		return fmt.Errorf("merge account: %w", err)
	}
	return nil
}
