// Package registration implements the field reconciliation and merge engine:
// deciding what an event still needs from a user, which submitted values are
// acceptable, and how accepted values land in the profile and registration
// records.
package registration

import (
	"time"

	"github.com/Omkar76/nscc-backend/internal/catalog"
)

// FieldStore is the read-path result: one descriptor per required field, in
// the event's order, each carrying the user's current value.
type FieldStore struct {
	EventID string               `json:"eventId"`
	Fields  []catalog.Descriptor `json:"fields"`
}

// Status is returned by the status and register operations. Record existence
// is the sole signal of "already registered".
type Status struct {
	EventID    string `json:"eventId"`
	Registered bool   `json:"registered"`
}

// Record is the persisted per-(event, user) registration. Repeat submissions
// merge into the same record; they never append.
type Record struct {
	EventID       string            `json:"eventId"`
	UID           string            `json:"uid"`
	Email         string            `json:"email"`
	EmailVerified bool              `json:"emailVerified"`
	ModifiedAt    time.Time         `json:"modifiedAt"`
	Fields        map[string]string `json:"fields"`
}
