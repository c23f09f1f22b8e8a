package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/Omkar76/nscc-backend/internal/account"
	"github.com/Omkar76/nscc-backend/internal/catalog"
	"github.com/Omkar76/nscc-backend/internal/event"
	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/internal/platform/audit"
	"github.com/Omkar76/nscc-backend/internal/platform/metrics"
	regstore "github.com/Omkar76/nscc-backend/internal/registration/store"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
)

// countingProfileStore wraps the in-memory store to observe access patterns.
type countingProfileStore struct {
	*account.InMemoryStore
	gets   int
	merges int
}

func (c *countingProfileStore) Get(ctx context.Context, uid string) (*account.Profile, error) {
	c.gets++
	return c.InMemoryStore.Get(ctx, uid)
}

func (c *countingProfileStore) Merge(ctx context.Context, uid string, fields map[string]string) error {
	c.merges++
	return c.InMemoryStore.Merge(ctx, uid, fields)
}

type ServiceSuite struct {
	suite.Suite
	ctx           context.Context
	events        *event.InMemoryStore
	profiles      *countingProfileStore
	registrations *regstore.InMemoryStore
	provider      *identity.InMemoryProvider
	sink          *audit.MemorySink
	service       *Service
	caller        identity.Caller
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.events = event.NewInMemoryStore()
	s.profiles = &countingProfileStore{InMemoryStore: account.NewInMemoryStore()}
	s.registrations = regstore.NewInMemoryStore()
	s.provider = identity.NewInMemoryProvider()
	s.sink = audit.NewMemorySink()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cat := catalog.Builtin()

	var err error
	s.service, err = New(
		cat,
		NewValidator(cat, ValidatorOptions{}),
		s.events,
		s.profiles,
		s.registrations,
		s.provider,
		logger,
		metrics.New(prometheus.NewRegistry()),
		audit.NewPublisher(logger, s.sink),
	)
	s.Require().NoError(err)

	s.caller = identity.Caller{
		UID:           "u1",
		Email:         "alice@nscc.dev",
		EmailVerified: true,
		DisplayName:   "Alice",
		PhotoURL:      "https://example.com/alice.png",
	}
}

func (s *ServiceSuite) putEvent(id string, required ...string) {
	s.Require().NoError(s.events.Put(s.ctx, &event.Event{
		ID:                 id,
		Name:               id,
		RequiredUserFields: required,
		CreatedAt:          time.Now(),
	}))
}

func (s *ServiceSuite) TestNew() {
	s.Run("nil catalog returns error", func() {
		_, err := New(nil, NewValidator(catalog.Builtin(), ValidatorOptions{}),
			s.events, s.profiles, s.registrations, s.provider, nil, nil, nil)
		s.Error(err)
	})

	s.Run("nil stores return error", func() {
		cat := catalog.Builtin()
		_, err := New(cat, NewValidator(cat, ValidatorOptions{}),
			nil, nil, nil, s.provider, nil, nil, nil)
		s.Error(err)
	})
}

func (s *ServiceSuite) TestFields() {
	s.Run("unknown event returns NOT_FOUND", func() {
		_, err := s.service.Fields(s.ctx, "ghost", s.caller)
		s.Require().Error(err)
		s.True(derrors.HasCode(err, derrors.CodeNotFound))
	})

	s.Run("empty required list short-circuits before any profile read", func() {
		s.putEvent("open-mic")
		before := s.profiles.gets

		store, err := s.service.Fields(s.ctx, "open-mic", s.caller)
		s.Require().NoError(err)
		s.Empty(store.Fields)
		s.Equal("open-mic", store.EventID)
		s.Equal(before, s.profiles.gets, "profile store must not be touched")
	})

	s.Run("missing profile is seeded from identity claims", func() {
		s.putEvent("hackathon", "college")

		_, err := s.service.Fields(s.ctx, "hackathon", s.caller)
		s.Require().NoError(err)

		profile, err := s.profiles.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal("alice@nscc.dev", profile.Email)
		s.Equal("Alice", profile.DisplayName)
		s.Len(s.sink.ByAction(audit.ActionProfileSeeded), 1)
	})

	s.Run("seeding happens once", func() {
		s.putEvent("hackathon", "college")
		s.Require().NoError(s.profiles.Merge(s.ctx, "u1", map[string]string{"email": "alice@nscc.dev"}))
		merges := s.profiles.merges

		_, err := s.service.Fields(s.ctx, "hackathon", s.caller)
		s.Require().NoError(err)
		s.Equal(merges, s.profiles.merges, "existing profile must not be rewritten")
	})

	s.Run("descriptors follow the event's order and carry current values", func() {
		s.putEvent("hackathon", "year", "college")
		s.Require().NoError(s.profiles.Merge(s.ctx, "u1", map[string]string{"college": "COEP"}))

		store, err := s.service.Fields(s.ctx, "hackathon", s.caller)
		s.Require().NoError(err)
		s.Require().Len(store.Fields, 2)

		year, ok := store.Fields[0].(catalog.SelectDescriptor)
		s.Require().True(ok)
		s.Equal("year", year.Name)
		s.Equal("", year.Value)
		s.NotEmpty(year.Options)

		college, ok := store.Fields[1].(catalog.TextDescriptor)
		s.Require().True(ok)
		s.Equal("college", college.Name)
		s.Equal("COEP", college.Value)
	})

	s.Run("unknown required name gets a synthesized descriptor", func() {
		s.putEvent("quiz", "teamName")

		store, err := s.service.Fields(s.ctx, "quiz", s.caller)
		s.Require().NoError(err)
		s.Require().Len(store.Fields, 1)

		d, ok := store.Fields[0].(catalog.TextDescriptor)
		s.Require().True(ok)
		s.Equal("teamName", d.Name)
		s.Equal("teamName", d.Label)
		s.Equal("teamName", d.Placeholder)
		s.Equal(".+", d.Regex)
		s.True(d.Mutable)
	})

	s.Run("fixed identity attributes resolve as field values", func() {
		s.putEvent("meetup", "email")

		store, err := s.service.Fields(s.ctx, "meetup", s.caller)
		s.Require().NoError(err)
		s.Require().Len(store.Fields, 1)

		d, ok := store.Fields[0].(catalog.TextDescriptor)
		s.Require().True(ok)
		s.Equal("alice@nscc.dev", d.Value)
	})
}

func (s *ServiceSuite) TestRegister() {
	s.Run("unknown event returns NOT_FOUND", func() {
		_, err := s.service.Register(s.ctx, "ghost", s.caller, map[string]string{})
		s.Require().Error(err)
		s.True(derrors.HasCode(err, derrors.CodeNotFound))
	})

	s.Run("missing required field is a hard stop naming the field", func() {
		s.putEvent("hackathon", "college", "year")

		_, err := s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{"college": "COEP"})
		s.Require().Error(err)
		s.True(derrors.HasCode(err, derrors.CodeRequiredFieldMissing))
		s.Contains(err.Error(), "year")

		exists, err := s.registrations.Exists(s.ctx, "hackathon", "u1")
		s.Require().NoError(err)
		s.False(exists, "no writes on validation failure")

		_, err = s.profiles.InMemoryStore.Get(s.ctx, "u1")
		s.Require().Error(err, "accepted fields must not be applied")
	})

	s.Run("accepts submission and merges profile and registration", func() {
		s.putEvent("hackathon", "college", "year")

		status, err := s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{
			"college": "COEP",
			"year":    "Second",
		})
		s.Require().NoError(err)
		s.True(status.Registered)
		s.Equal("hackathon", status.EventID)

		profile, err := s.profiles.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal("COEP", profile.Fields["college"])
		s.Equal("Second", profile.Fields["year"])

		rec, err := s.registrations.Get(s.ctx, "hackathon", "u1")
		s.Require().NoError(err)
		s.Equal("alice@nscc.dev", rec.Email)
		s.True(rec.EmailVerified)
		s.Equal("COEP", rec.Fields["college"])
		s.Len(s.sink.ByAction(audit.ActionRegistrationCompleted), 1)
	})

	s.Run("resubmitting identical fields is idempotent", func() {
		s.putEvent("hackathon", "college")
		submitted := map[string]string{"college": "COEP"}

		_, err := s.service.Register(s.ctx, "hackathon", s.caller, submitted)
		s.Require().NoError(err)
		first, err := s.registrations.Get(s.ctx, "hackathon", "u1")
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, "hackathon", s.caller, submitted)
		s.Require().NoError(err)
		second, err := s.registrations.Get(s.ctx, "hackathon", "u1")
		s.Require().NoError(err)

		s.Equal(first.Fields, second.Fields, "no duplication, values unchanged")
		s.False(second.ModifiedAt.Before(first.ModifiedAt))
	})

	s.Run("first write to an immutable field is accepted", func() {
		s.putEvent("hackathon", "prn")

		_, err := s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{"prn": "1234567890"})
		s.Require().NoError(err)

		profile, err := s.profiles.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal("1234567890", profile.Fields["prn"])
	})

	s.Run("immutable overwrite is dropped silently, unrelated fields unaffected", func() {
		s.putEvent("hackathon", "college", "prn")
		caller := identity.Caller{UID: "u2", Email: "bob@nscc.dev"}

		_, err := s.service.Register(s.ctx, "hackathon", caller, map[string]string{
			"college": "COEP",
			"prn":     "1234567890",
		})
		s.Require().NoError(err)

		status, err := s.service.Register(s.ctx, "hackathon", caller, map[string]string{
			"college": "VIT",
			"prn":     "9999999999",
		})
		s.Require().NoError(err, "immutable overwrite is not an error")
		s.True(status.Registered)

		profile, err := s.profiles.Get(s.ctx, "u2")
		s.Require().NoError(err)
		s.Equal("VIT", profile.Fields["college"], "mutable field updated")
		s.Equal("1234567890", profile.Fields["prn"], "historical value retained")

		drops := s.sink.ByAction(audit.ActionImmutableFieldDropped)
		s.Require().Len(drops, 1)
		s.Equal("prn", drops[0].Field)
		s.Equal("u2", drops[0].UID)
	})

	s.Run("display name side channel reaches the identity provider", func() {
		s.putEvent("hackathon", "college")

		_, err := s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{
			"college":     "COEP",
			"displayName": "Alice B",
		})
		s.Require().NoError(err)

		name, ok := s.provider.DisplayName("u1")
		s.Require().True(ok)
		s.Equal("Alice B", name)
	})

	s.Run("record timestamp comes from the request-scoped clock", func() {
		s.putEvent("hackathon", "college")
		fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(s.ctx, fixed)

		_, err := s.service.Register(ctx, "hackathon", s.caller, map[string]string{"college": "COEP"})
		s.Require().NoError(err)

		rec, err := s.registrations.Get(s.ctx, "hackathon", "u1")
		s.Require().NoError(err)
		s.Equal(fixed, rec.ModifiedAt)
	})
}

func (s *ServiceSuite) TestStatus() {
	s.putEvent("hackathon", "college")

	status, err := s.service.Status(s.ctx, "hackathon", "u1")
	s.Require().NoError(err)
	s.False(status.Registered)

	_, err = s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{"college": "COEP"})
	s.Require().NoError(err)

	status, err = s.service.Status(s.ctx, "hackathon", "u1")
	s.Require().NoError(err)
	s.True(status.Registered)
}

// TestFullScenario walks the lifecycle end to end: ask, submit, re-ask.
func (s *ServiceSuite) TestFullScenario() {
	s.putEvent("hackathon", "college", "year")

	store, err := s.service.Fields(s.ctx, "hackathon", s.caller)
	s.Require().NoError(err)
	s.Require().Len(store.Fields, 2)
	college := store.Fields[0].(catalog.TextDescriptor)
	year := store.Fields[1].(catalog.SelectDescriptor)
	s.Equal("", college.Value)
	s.Equal("", year.Value)

	status, err := s.service.Register(s.ctx, "hackathon", s.caller, map[string]string{
		"college": "COEP",
		"year":    "Second",
	})
	s.Require().NoError(err)
	s.True(status.Registered)

	status, err = s.service.Status(s.ctx, "hackathon", "u1")
	s.Require().NoError(err)
	s.True(status.Registered)

	store, err = s.service.Fields(s.ctx, "hackathon", s.caller)
	s.Require().NoError(err)
	s.Equal("COEP", store.Fields[0].(catalog.TextDescriptor).Value)
	s.Equal("Second", store.Fields[1].(catalog.SelectDescriptor).Value)
}
