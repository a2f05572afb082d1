package document

import (
	"net/http"

	"venuebooking/internal/actor"
	"venuebooking/internal/api"
	"venuebooking/internal/booking"
	"venuebooking/pkg/db"
)

type Handlers struct {
	Bookings *booking.Repository
	Repo     *Repository
	Service  *Service
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), id)
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

	items, err := h.Repo.ListByBooking(r.Context(), id)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type UploadRequest struct {
	FileURL      string `json:"fileUrl" validate:"required,url"`
	FileName     string `json:"fileName" validate:"max=255"`
	DocumentType string `json:"documentType" validate:"omitempty,oneof=dean_approval event_proposal identification payment_receipt other"`
	Description  string `json:"description" validate:"max=2000"`
}

func (h Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req UploadRequest
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}
	typ, err := ParseType(req.DocumentType)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	d, err := h.Service.Upload(r.Context(), id, a, UploadInput{
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		Type:        typ,
		Description: req.Description,
	})
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, d)
}

func (h Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}
	docID, ok := api.URLParamID(w, r, "doc_id")
	if !ok {
		return
	}

	res, err := h.Service.Verify(r.Context(), bookingID, docID, a)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"status":               "success",
		"isVerified":           res.IsVerified,
		"verifiedAt":           res.VerifiedAt,
		"allDocumentsVerified": res.AllVerified,
	})
}
