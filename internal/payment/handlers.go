package payment

import (
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"venuebooking/internal/api"
	"venuebooking/internal/audit"
	"venuebooking/pkg/db"
)

type Handlers struct {
	DB *pgxpool.Pool
}

type RecordRequest struct {
	Reference string `json:"reference" validate:"required,max=200"`
}

// RecordPayment marks an offline payment as received. Booking status is not
// touched; only the payment columns change.
func (h Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	if !a.IsStaffOrAdmin() {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only staff may record payments")
		return
	}
	id, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req RecordRequest
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}
	ref := strings.TrimSpace(req.Reference)

	var resp map[string]any
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		const qLock = `
SELECT payment_required, payment_completed, payment_amount::text
FROM bookings
WHERE id = $1
FOR UPDATE
`
		var required, completed bool
		var amountStr string
		if err := tx.QueryRow(r.Context(), qLock, id).Scan(&required, &completed, &amountStr); err != nil {
			if db.IsNoRows(err) {
				api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
				return pgx.ErrTxCommitRollback
			}
			return err
		}
		if !required {
			api.WriteError(w, http.StatusConflict, "PAYMENT_NOT_REQUIRED", "booking does not require payment")
			return pgx.ErrTxCommitRollback
		}
		if completed {
			api.WriteError(w, http.StatusConflict, "PAYMENT_ALREADY_RECORDED", "payment already recorded")
			return pgx.ErrTxCommitRollback
		}

		const qUpd = `
UPDATE bookings
SET payment_completed = TRUE, payment_reference = $2, updated_at = NOW()
WHERE id = $1
`
		if _, err := tx.Exec(r.Context(), qUpd, id, ref); err != nil {
			return err
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return err
		}
		if err := audit.Insert(r.Context(), tx, &id, audit.ActionPaymentRecorded, a.ID, map[string]any{
			"reference": ref, "amount": amount.StringFixed(2),
		}); err != nil {
			return err
		}

		resp = map[string]any{
			"status":           "success",
			"paymentCompleted": true,
			"paymentReference": ref,
			"paymentAmount":    amount.StringFixed(2),
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteAppError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
