// Package store persists registration records keyed by (event, user).
package store

import (
	"context"

	"github.com/Omkar76/nscc-backend/internal/registration"
)

// Store is the registration record collaborator. Merge is an idempotent
// partial upsert: re-submitting updates field values in place, and fields
// missing from a later merge survive from earlier ones.
type Store interface {
	Exists(ctx context.Context, eventID, uid string) (bool, error)
	Get(ctx context.Context, eventID, uid string) (*registration.Record, error)
	Merge(ctx context.Context, rec *registration.Record) error
}
