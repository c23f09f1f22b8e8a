// Package service implements the registration operations: resolving the
// fields an event still needs from a user, validating submissions, and
// merging accepted values into the profile and registration records.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Omkar76/nscc-backend/internal/account"
	"github.com/Omkar76/nscc-backend/internal/catalog"
	"github.com/Omkar76/nscc-backend/internal/event"
	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/internal/platform/audit"
	"github.com/Omkar76/nscc-backend/internal/platform/metrics"
	"github.com/Omkar76/nscc-backend/internal/registration"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

// Store dependencies are declared here, consumer-side, so any implementation
// with merge-upsert semantics can back the service.

type EventStore interface {
	Get(ctx context.Context, id string) (*event.Event, error)
}

type ProfileStore interface {
	Get(ctx context.Context, uid string) (*account.Profile, error)
	Merge(ctx context.Context, uid string, fields map[string]string) error
}

type RegistrationStore interface {
	Exists(ctx context.Context, eventID, uid string) (bool, error)
	Merge(ctx context.Context, rec *registration.Record) error
}

// Service coordinates the catalog, validator, and stores. It holds no mutable
// state of its own; correctness under concurrent submissions rests on the
// stores' field-level merge semantics.
type Service struct {
	catalog       *catalog.Catalog
	validator     *Validator
	events        EventStore
	profiles      ProfileStore
	registrations RegistrationStore
	identity      identity.Provider
	logger        *slog.Logger
	metrics       *metrics.Metrics
	audit         *audit.Publisher
}

func New(
	c *catalog.Catalog,
	validator *Validator,
	events EventStore,
	profiles ProfileStore,
	registrations RegistrationStore,
	provider identity.Provider,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditPub *audit.Publisher,
) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if events == nil || profiles == nil || registrations == nil {
		return nil, fmt.Errorf("event, profile and registration stores are required")
	}
	if provider == nil {
		return nil, fmt.Errorf("identity provider is required")
	}
	return &Service{
		catalog:       c,
		validator:     validator,
		events:        events,
		profiles:      profiles,
		registrations: registrations,
		identity:      provider,
		logger:        logger,
		metrics:       m,
		audit:         auditPub,
	}, nil
}

// Fields resolves the event's required field list against the caller's
// profile, returning one descriptor per required name in the event's order.
//
// An empty required list short-circuits before any profile read. A missing
// profile is seeded from the caller's identity claims so later resolutions
// (and immutability checks) see one.
func (s *Service) Fields(ctx context.Context, eventID string, caller identity.Caller) (*registration.FieldStore, error) {
	ev, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if len(ev.RequiredUserFields) == 0 {
		return &registration.FieldStore{EventID: eventID, Fields: []catalog.Descriptor{}}, nil
	}

	profile, err := s.profiles.Get(ctx, caller.UID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Wrap(err, derrors.CodeInternal, "profile lookup failed")
		}
		profile, err = s.seedProfile(ctx, caller)
		if err != nil {
			return nil, err
		}
	}

	store := &registration.FieldStore{
		EventID: eventID,
		Fields:  make([]catalog.Descriptor, 0, len(ev.RequiredUserFields)),
	}
	for _, name := range ev.RequiredUserFields {
		field := s.catalog.Resolve(name)
		value, _ := profile.Value(name)
		store.Fields = append(store.Fields, field.WithValue(value))
	}

	s.metrics.IncrementFieldResolutions()
	return store, nil
}

// Status reports whether a registration record exists for (event, caller).
// Record existence is the sole registration signal; field updates after the
// first successful submission do not change it.
func (s *Service) Status(ctx context.Context, eventID, uid string) (*registration.Status, error) {
	exists, err := s.registrations.Exists(ctx, eventID, uid)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "registration lookup failed")
	}
	return &registration.Status{EventID: eventID, Registered: exists}, nil
}

// Register validates the submission against the event's required fields and,
// on success, merges accepted values into the profile and upserts the
// registration record.
//
// Each merge step is independently idempotent, so there is no rollback: a
// partial failure leaves the system in a state where re-invoking the full
// operation is safe and convergent.
func (s *Service) Register(ctx context.Context, eventID string, caller identity.Caller, submitted map[string]string) (*registration.Status, error) {
	ev, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, caller.UID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Wrap(err, derrors.CodeInternal, "profile lookup failed")
		}
		profile = nil
	}

	accepted, dropped, err := s.validator.Validate(ev.RequiredUserFields, submitted, profile)
	if err != nil {
		return nil, err
	}

	requestID := requestcontext.RequestID(ctx)
	for _, name := range dropped {
		s.logger.InfoContext(ctx, "immutable field ignored",
			"field", name,
			"event_id", eventID,
			"uid", caller.UID,
			"request_id", requestID,
		)
		s.metrics.IncrementImmutableFieldDrops()
		s.audit.Emit(ctx, audit.Event{
			Action:    audit.ActionImmutableFieldDropped,
			UID:       caller.UID,
			EventID:   eventID,
			Field:     name,
			RequestID: requestID,
		})
	}

	if len(accepted) > 0 {
		if err := s.profiles.Merge(ctx, caller.UID, accepted); err != nil {
			return nil, derrors.Wrap(err, derrors.CodeInternal, "profile merge failed")
		}
	}

	// Display name has a side channel to the identity provider, independent
	// of whether the event requires it.
	if displayName, ok := submitted[account.AttrDisplayName]; ok {
		if err := s.identity.UpdateDisplayName(ctx, caller.UID, displayName); err != nil {
			return nil, derrors.Wrap(err, derrors.CodeInternal, "display name update failed")
		}
		s.audit.Emit(ctx, audit.Event{
			Action:    audit.ActionDisplayNameUpdated,
			UID:       caller.UID,
			RequestID: requestID,
		})
	}

	rec := &registration.Record{
		EventID:       eventID,
		UID:           caller.UID,
		Email:         caller.Email,
		EmailVerified: caller.EmailVerified,
		ModifiedAt:    requestcontext.Now(ctx),
		Fields:        accepted,
	}
	if err := s.registrations.Merge(ctx, rec); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "registration merge failed")
	}

	s.metrics.IncrementRegistrations()
	s.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionRegistrationCompleted,
		UID:       caller.UID,
		EventID:   eventID,
		RequestID: requestID,
	})
	return &registration.Status{EventID: eventID, Registered: true}, nil
}

func (s *Service) getEvent(ctx context.Context, eventID string) (*event.Event, error) {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.New(derrors.CodeNotFound, "event not found")
		}
		return nil, derrors.Wrap(err, derrors.CodeInternal, "event lookup failed")
	}
	return ev, nil
}

func (s *Service) seedProfile(ctx context.Context, caller identity.Caller) (*account.Profile, error) {
	seed := map[string]string{}
	if caller.Email != "" {
		seed[account.AttrEmail] = caller.Email
	}
	if caller.DisplayName != "" {
		seed[account.AttrDisplayName] = caller.DisplayName
	}
	if caller.PhotoURL != "" {
		seed[account.AttrPhotoURL] = caller.PhotoURL
	}
	if err := s.profiles.Merge(ctx, caller.UID, seed); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "profile seed failed")
	}

	s.metrics.IncrementProfilesSeeded()
	s.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionProfileSeeded,
		UID:       caller.UID,
		RequestID: requestcontext.RequestID(ctx),
	})

	profile := &account.Profile{
		UID:         caller.UID,
		Email:       caller.Email,
		DisplayName: caller.DisplayName,
		PhotoURL:    caller.PhotoURL,
	}
	return profile, nil
}
