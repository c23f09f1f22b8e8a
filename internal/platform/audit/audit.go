// Package audit captures key registration actions for operational visibility.
// Events are emitted from domain logic and fanned out to configured sinks;
// emission is best effort and never fails the request that produced it.
package audit

import "time"

type Action string

const (
	ActionRegistrationCompleted Action = "registration_completed"
	ActionImmutableFieldDropped Action = "immutable_field_dropped"
	ActionProfileSeeded         Action = "profile_seeded"
	ActionDisplayNameUpdated    Action = "display_name_updated"
	ActionAccountPatched        Action = "account_patched"
	ActionEventCreated          Action = "event_created"
)

// Event is emitted from domain logic. Keep it transport-agnostic so sinks can
// fan out to memory, logs, or Kafka.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	UID       string    `json:"uid,omitempty"`
	EventID   string    `json:"eventId,omitempty"`
	Field     string    `json:"field,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}
