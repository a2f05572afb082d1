package approval

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/api"
	"venuebooking/internal/booking"
	"venuebooking/internal/history"
	"venuebooking/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Bookings *booking.Repository
	Service  *Service
}

type ActionRequest struct {
	Comment string `json:"comment" validate:"max=4000"`
}

func writeResult(w http.ResponseWriter, res *Result) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"action":        res.Action,
		"bookingStatus": res.Status,
		"historyId":     res.HistoryID,
	})
}

// Action serves the fixed per-action routes.
func (h Handlers) Action(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.apply(w, r, string(action))
	}
}

// ActionByName serves /actions/{action}; unknown names get INVALID_ACTION.
func (h Handlers) ActionByName(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, chi.URLParam(r, "action"))
}

func (h Handlers) apply(w http.ResponseWriter, r *http.Request, rawAction string) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req ActionRequest
	if !api.DecodeJSON(w, r, &req, true) {
		return
	}

	res, err := h.Service.ApplyAction(r.Context(), id, rawAction, a, req.Comment)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res)
}

func (h Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.Service.Cancel(r.Context(), id, a)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res)
}

func (h Handlers) Complete(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.Service.Complete(r.Context(), id, a)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res)
}

// History lists transitions newest first. Staff and admins only.
func (h Handlers) History(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	if !a.IsStaffOrAdmin() {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only staff may view booking history")
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.Bookings.GetByID(r.Context(), id); err != nil {
		if db.IsNoRows(err) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteAppError(w, r, err)
		return
	}

	items, err := history.ListByBooking(r.Context(), h.DB, id)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Queue lists approval-routed bookings awaiting moderation. Staff see only
// their own department.
func (h Handlers) Queue(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	if !a.IsStaffOrAdmin() {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only staff may view the approval queue")
		return
	}

	statuses := booking.QueueStatuses
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := booking.ParseStatus(raw)
		if err != nil || !booking.IsQueueStatus(st) {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "status must be pending, under_review or documents_pending")
			return
		}
		statuses = []booking.Status{st}
	}

	items, err := h.Bookings.ListQueue(r.Context(), a.Department(), statuses)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
