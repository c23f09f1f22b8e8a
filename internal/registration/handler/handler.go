// Package handler exposes the registration endpoints. It parses transport
// concerns and delegates every decision to the registration service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/internal/registration"
	"github.com/Omkar76/nscc-backend/internal/transport/shared"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
)

// Service is what the handler needs from the registration engine.
type Service interface {
	Fields(ctx context.Context, eventID string, caller identity.Caller) (*registration.FieldStore, error)
	Status(ctx context.Context, eventID, uid string) (*registration.Status, error)
	Register(ctx context.Context, eventID string, caller identity.Caller, submitted map[string]string) (*registration.Status, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the registration routes. Callers are expected to wrap the
// router with the auth middleware; handlers read the caller from context.
func (h *Handler) Register(r chi.Router) {
	r.Route("/registration/{eventID}", func(r chi.Router) {
		r.Get("/fields", h.handleFields)
		r.Get("/status", h.handleStatus)
		r.Post("/", h.handleRegister)
	})
}

func (h *Handler) handleFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	caller := requestcontext.Caller(ctx)

	store, err := h.service.Fields(ctx, eventID, caller)
	if err != nil {
		h.logError(ctx, "field resolution failed", eventID, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, store)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	caller := requestcontext.Caller(ctx)

	status, err := h.service.Status(ctx, eventID, caller.UID)
	if err != nil {
		h.logError(ctx, "status check failed", eventID, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, status)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	caller := requestcontext.Caller(ctx)

	// Submissions are a flat string-to-string object; anything else is
	// rejected rather than trusted.
	var submitted map[string]string
	if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
		h.logger.WarnContext(ctx, "invalid registration body",
			"event_id", eventID,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, derrors.New(derrors.CodeBadRequest, "request body must be a JSON object of string values"))
		return
	}

	status, err := h.service.Register(ctx, eventID, caller, submitted)
	if err != nil {
		h.logError(ctx, "registration failed", eventID, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, status)
}

func (h *Handler) logError(ctx context.Context, msg, eventID string, err error) {
	log := h.logger.WarnContext
	if derrors.CodeOf(err) == derrors.CodeInternal {
		log = h.logger.ErrorContext
	}
	log(ctx, msg,
		"event_id", eventID,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
