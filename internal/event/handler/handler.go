// Package handler exposes minimal event administration: creating an event
// with its required-field list and reading it back.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Omkar76/nscc-backend/internal/event"
	"github.com/Omkar76/nscc-backend/internal/platform/audit"
	"github.com/Omkar76/nscc-backend/internal/transport/shared"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

type Handler struct {
	logger *slog.Logger
	store  event.Store
	audit  *audit.Publisher
}

func New(store event.Store, logger *slog.Logger, auditPub *audit.Publisher) *Handler {
	return &Handler{logger: logger, store: store, audit: auditPub}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/events", h.handleCreate)
	r.Get("/events/{eventID}", h.handleGet)
}

type createEventRequest struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	RequiredUserFields []string `json:"requiredUserFields"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == "" {
		shared.WriteError(w, derrors.New(derrors.CodeBadRequest, "event name is required"))
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	ev := &event.Event{
		ID:                 req.ID,
		Name:               req.Name,
		RequiredUserFields: req.RequiredUserFields,
		CreatedAt:          requestcontext.Now(ctx),
	}
	if err := h.store.Put(ctx, ev); err != nil {
		h.logger.ErrorContext(ctx, "event create failed",
			"event_id", req.ID,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, derrors.Wrap(err, derrors.CodeInternal, "event create failed"))
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionEventCreated,
		EventID:   ev.ID,
		RequestID: requestcontext.RequestID(ctx),
	})
	shared.WriteData(w, http.StatusCreated, ev)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	ev, err := h.store.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			shared.WriteError(w, derrors.New(derrors.CodeNotFound, "event not found"))
			return
		}
		h.logger.ErrorContext(ctx, "event lookup failed",
			"event_id", eventID,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, derrors.Wrap(err, derrors.CodeInternal, "event lookup failed"))
		return
	}
	shared.WriteData(w, http.StatusOK, ev)
}
