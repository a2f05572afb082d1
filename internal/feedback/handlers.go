package feedback

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/api"
	"venuebooking/internal/audit"
	"venuebooking/pkg/db"
)

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
}

// List returns all comments to staff and admins and only external comments
// to the booking owner.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	const qOwner = `SELECT owner_id FROM bookings WHERE id = $1`
	var ownerID string
	if err := h.DB.QueryRow(r.Context(), qOwner, bookingID).Scan(&ownerID); err != nil {
		if db.IsNoRows(err) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteAppError(w, r, err)
		return
	}
	if !a.IsStaffOrAdmin() && a.ID != ownerID {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	items, err := h.Repo.ListByBooking(r.Context(), bookingID)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": Visible(items, a.IsStaffOrAdmin())})
}

type CreateRequest struct {
	Content      string `json:"content" validate:"required,max=4000"`
	IsInternal   *bool  `json:"isInternal"`
	FeedbackType string `json:"feedbackType" validate:"omitempty,oneof=general rejection approval requirement"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	if !a.IsStaffOrAdmin() {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only staff may add comments")
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req CreateRequest
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}
	typ, err := ParseType(req.FeedbackType)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	internal := true
	if req.IsInternal != nil {
		internal = *req.IsInternal
	}

	var created *Feedback
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		const qExists = `SELECT 1 FROM bookings WHERE id = $1`
		var one int
		if err := tx.QueryRow(r.Context(), qExists, bookingID).Scan(&one); err != nil {
			if db.IsNoRows(err) {
				api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
				return pgx.ErrTxCommitRollback
			}
			return err
		}

		f, err := Insert(r.Context(), tx, Draft{
			BookingID:  bookingID,
			StaffID:    a.ID,
			Content:    req.Content,
			IsInternal: internal,
			Type:       typ,
		})
		if err != nil {
			return err
		}
		created = f

		return audit.Insert(r.Context(), tx, &bookingID, audit.ActionFeedbackAdded, a.ID, map[string]any{
			"feedbackId": f.ID, "feedbackType": f.Type, "isInternal": f.IsInternal,
		})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteAppError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}
