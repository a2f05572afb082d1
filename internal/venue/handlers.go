package venue

import (
	"net/http"

	"venuebooking/internal/api"
	"venuebooking/pkg/db"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available") == "true"

	items, err := h.Repo.List(r.Context(), availableOnly)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	if items == nil {
		items = []Venue{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	v, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "venue not found")
			return
		}
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}
