package session

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/roster"
	"github.com/frahmantamala/access-console/internal/transport"
)

type ServiceAPI interface {
	Open(ctx context.Context, mode Mode, userID int64) (string, Snapshot, error)
	Get(ctx context.Context, id string) (Snapshot, error)
	SetFields(ctx context.Context, id string, fields map[string]string) (Snapshot, error)
	SetStatus(ctx context.Context, id string, status roster.Status) (Snapshot, error)
	TogglePermission(ctx context.Context, id, systemID string) (Snapshot, error)
	SetPermissionDetails(ctx context.Context, id, systemID, details string) (Snapshot, error)
	ApplySuggestions(ctx context.Context, id string, systemIDs []string) (Snapshot, error)
	Suggest(ctx context.Context, id string) (Snapshot, []string, error)
	Save(ctx context.Context, id string) (*roster.User, error)
	Discard(ctx context.Context, id string) error
	Catalog() *catalog.Catalog
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// OpenSession handles POST /sessions
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if appErr := validateRequest(req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	id, snap, err := h.Service.Open(r.Context(), req.Mode, req.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ToResponse(id, snap, h.Service.Catalog()))
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.Service.Get(r.Context(), id)
	h.writeSnapshot(w, id, snap, err)
}

// DiscardSession handles DELETE /sessions/{id}
func (h *Handler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteNoContent(w)
}

// UpdateProfile handles PATCH /sessions/{id}/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if !h.DecodeJSON(w, r, &fields) {
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.Service.SetFields(r.Context(), id, fields)
	h.writeSnapshot(w, id, snap, err)
}

// SetStatus handles PUT /sessions/{id}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if appErr := validateRequest(req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.Service.SetStatus(r.Context(), id, req.Status)
	h.writeSnapshot(w, id, snap, err)
}

// TogglePermission handles POST /sessions/{id}/permissions/{systemId}/toggle
func (h *Handler) TogglePermission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.Service.TogglePermission(r.Context(), id, chi.URLParam(r, "systemId"))
	h.writeSnapshot(w, id, snap, err)
}

// SetPermissionDetails handles PUT /sessions/{id}/permissions/{systemId}
func (h *Handler) SetPermissionDetails(w http.ResponseWriter, r *http.Request) {
	var req DetailsRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.Service.SetPermissionDetails(r.Context(), id, chi.URLParam(r, "systemId"), req.Details)
	h.writeSnapshot(w, id, snap, err)
}

// ApplySuggestions handles PUT /sessions/{id}/permissions
func (h *Handler) ApplySuggestions(w http.ResponseWriter, r *http.Request) {
	var req ApplySuggestionsRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if appErr := validateRequest(req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.Service.ApplySuggestions(r.Context(), id, req.SystemIDs)
	h.writeSnapshot(w, id, snap, err)
}

// Suggest handles POST /sessions/{id}/suggestions
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ids, err := h.Service.Suggest(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	h.WriteJSON(w, http.StatusOK, SuggestResponse{
		Suggested: ids,
		Session:   ToResponse(id, snap, h.Service.Catalog()),
	})
}

// Save handles POST /sessions/{id}/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.Service.Save(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Save: session committed", "session_id", id, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, roster.ToResponse(user, h.Service.Catalog()))
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, id string, snap Snapshot, err error) {
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(id, snap, h.Service.Catalog()))
}
