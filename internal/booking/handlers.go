package booking

import (
	"net/http"
	"time"

	"venuebooking/internal/actor"
	"venuebooking/internal/api"
	"venuebooking/pkg/db"
)

type Handlers struct {
	Repo    *Repository
	Service *Service
}

type CreateRequest struct {
	VenueID        string    `json:"venueId" validate:"required,uuid"`
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description" validate:"max=4000"`
	StartTime      time.Time `json:"startTime" validate:"required"`
	EndTime        time.Time `json:"endTime" validate:"required"`
	AttendeesCount int       `json:"attendeesCount" validate:"required,gt=0"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}

	b, err := h.Service.Create(r.Context(), a, CreateInput{
		VenueID:        req.VenueID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AttendeesCount: req.AttendeesCount,
	})
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, b)
}

type UpdateRequest struct {
	Title          *string    `json:"title" validate:"omitempty,max=200"`
	Description    *string    `json:"description" validate:"omitempty,max=4000"`
	StartTime      *time.Time `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	AttendeesCount *int       `json:"attendeesCount" validate:"omitempty,gt=0"`
}

// Update edits title, description, time window and attendees of a pending
// booking.
func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}

	b, err := h.Service.Update(r.Context(), id, a, UpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AttendeesCount: req.AttendeesCount,
	})
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}

// List shows students their own bookings; staff and admins see all.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}

	f := Filter{}
	if !a.IsStaffOrAdmin() || r.URL.Query().Get("mine") == "true" {
		f.OwnerID = a.ID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := ParseStatus(raw)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
			return
		}
		f.Status = st
	}

	items, err := h.Repo.List(r.Context(), f)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteAppError(w, r, err)
		return
	}
	if err := actor.CanView(a, b.OwnerID); err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}
