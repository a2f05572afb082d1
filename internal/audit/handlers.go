package audit

import (
	"net/http"

	"venuebooking/internal/api"
)

type Handlers struct {
	Repo *Repository
}

// ListByBooking is an admin-only view of every recorded change on a booking.
func (h Handlers) ListByBooking(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	if !a.IsAdmin() {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "admin only")
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.Repo.ListByBooking(r.Context(), id)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
