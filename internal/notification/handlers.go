package notification

import (
	"net/http"

	"venuebooking/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}

	items, err := h.Repo.ListByRecipient(r.Context(), a.ID, r.URL.Query().Get("unread") == "true")
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.Repo.MarkRead(r.Context(), a.ID, id)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	if !found {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
