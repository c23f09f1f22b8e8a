// Package handler exposes the account CRUD glue: direct read and partial
// update of a profile record, outside any event's registration flow.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Omkar76/nscc-backend/internal/account"
	"github.com/Omkar76/nscc-backend/internal/platform/audit"
	"github.com/Omkar76/nscc-backend/internal/transport/shared"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

type Handler struct {
	logger *slog.Logger
	store  account.Store
	audit  *audit.Publisher
}

func New(store account.Store, logger *slog.Logger, auditPub *audit.Publisher) *Handler {
	return &Handler{logger: logger, store: store, audit: auditPub}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/accounts/{uid}", h.handleGet)
	r.Patch("/accounts/{uid}", h.handlePatch)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	profile, err := h.store.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			shared.WriteError(w, derrors.New(derrors.CodeNotFound, "account not found"))
			return
		}
		h.logError(ctx, "account lookup failed", uid, err)
		shared.WriteError(w, derrors.Wrap(err, derrors.CodeInternal, "account lookup failed"))
		return
	}
	shared.WriteData(w, http.StatusOK, profile)
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		shared.WriteError(w, derrors.New(derrors.CodeBadRequest, "request body must be a JSON object of string values"))
		return
	}
	if len(fields) == 0 {
		shared.WriteError(w, derrors.New(derrors.CodeBadRequest, "nothing to update"))
		return
	}

	if err := h.store.Merge(ctx, uid, fields); err != nil {
		h.logError(ctx, "account update failed", uid, err)
		shared.WriteError(w, derrors.Wrap(err, derrors.CodeInternal, "account update failed"))
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionAccountPatched,
		UID:       uid,
		RequestID: requestcontext.RequestID(ctx),
	})
	shared.WriteData(w, http.StatusOK, map[string]string{"message": "account updated"})
}

func (h *Handler) logError(ctx context.Context, msg, uid string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"uid", uid,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
