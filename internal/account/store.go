package account

import "context"

// Store persists profiles. Merge is an upsert: it creates the profile when
// absent and otherwise applies a field-level partial update, so concurrent
// merges with disjoint keys converge to the union of both.
type Store interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Merge(ctx context.Context, uid string, fields map[string]string) error
}
