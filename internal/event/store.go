package event

import "context"

// Store persists events. Get returns sentinel.ErrNotFound for unknown IDs.
type Store interface {
	Get(ctx context.Context, id string) (*Event, error)
	Put(ctx context.Context, ev *Event) error
}
