// Package event holds the event entity consumed by registration: each event
// carries the ordered list of user field names a registrant must supply.
package event

import "time"

// Event is the registration-facing view of an event.
type Event struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RequiredUserFields []string  `json:"requiredUserFields"`
	CreatedAt          time.Time `json:"createdAt"`
}
