package document

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/audit"
	"venuebooking/internal/booking"
	"venuebooking/internal/events"
	"venuebooking/internal/history"
	"venuebooking/internal/metrics"
	"venuebooking/internal/notification"
	"venuebooking/pkg/db"
)

const CommentAllVerified = "All required documents verified"

type Service struct {
	DB      *pgxpool.Pool
	Events  events.Publisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type VerifyResult struct {
	IsVerified  bool      `json:"isVerified"`
	VerifiedAt  time.Time `json:"verifiedAt"`
	AllVerified bool      `json:"allDocumentsVerified"`
	// HistoryID is set only when the booking moved back to pending.
	HistoryID string `json:"historyId,omitempty"`
}

// Verify marks one document verified and, when it was the last one on a
// documents_pending booking, returns the booking to pending. The booking row
// is locked before the document row, the same order every status writer uses.
func (s *Service) Verify(ctx context.Context, bookingID, documentID string, a actor.Actor) (*VerifyResult, error) {
	if !a.IsStaffOrAdmin() {
		return nil, apperr.PermissionDenied("only staff may verify documents")
	}
	now := s.now()

	var (
		b    *booking.Booking
		gate Gate
		res  VerifyResult
	)
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var err error
		b, err = booking.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("booking")
			}
			return err
		}

		d, err := GetForUpdate(ctx, tx, bookingID, documentID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("document")
			}
			return err
		}

		if err := MarkVerified(ctx, tx, d.ID, a.ID, now); err != nil {
			return err
		}

		remaining, err := CountUnverified(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		res = VerifyResult{IsVerified: true, VerifiedAt: now, AllVerified: remaining == 0}

		if err := audit.Insert(ctx, tx, &b.ID, audit.ActionDocumentVerified, a.ID, map[string]any{
			"documentId": d.ID, "allVerified": res.AllVerified,
		}); err != nil {
			return err
		}

		gate = Evaluate(b.Status, res.AllVerified)
		if !gate.Transition {
			return nil
		}

		if err := booking.MarkDocumentsVerified(ctx, tx, b.ID, gate.To); err != nil {
			return err
		}
		changedBy := a.ID
		res.HistoryID, err = history.Insert(ctx, tx, history.Entry{
			BookingID:      b.ID,
			PreviousStatus: string(b.Status),
			NewStatus:      string(gate.To),
			ChangedBy:      &changedBy,
			Comment:        CommentAllVerified,
			HandledByRole:  a.RoleLabel(),
		})
		if err != nil {
			return err
		}

		title, msg := notification.StatusMessage(b.BookingCode, b.Title, string(gate.To), CommentAllVerified)
		return notification.Insert(ctx, tx, b.OwnerID, notification.TypeBookingStatus, title, msg, &b.ID)
	})
	if err != nil {
		return nil, err
	}

	if gate.Transition {
		events.Emit(ctx, s.Events, events.Event{
			Type:        events.TypeBookingStatusChanged,
			BookingID:   b.ID,
			BookingCode: b.BookingCode,
			From:        string(b.Status),
			To:          string(gate.To),
			ActorID:     a.ID,
			OccurredAt:  now,
		})
	}
	s.Metrics.Verification(gate.Transition)
	return &res, nil
}

type UploadInput struct {
	FileURL     string
	FileName    string
	Type        Type
	Description string
}

// Upload records a document reference. Owners may attach documents while
// the booking is pending, approved or documents_pending; staff at any time.
func (s *Service) Upload(ctx context.Context, bookingID string, a actor.Actor, in UploadInput) (*Document, error) {
	if strings.TrimSpace(in.FileURL) == "" {
		return nil, apperr.Validation("FILE_URL_REQUIRED", "fileUrl is required")
	}
	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = in.FileURL[strings.LastIndex(in.FileURL, "/")+1:]
	}

	var created *Document
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("booking")
			}
			return err
		}
		if err := CanUpload(b, a); err != nil {
			return err
		}

		created, err = Insert(ctx, tx, Document{
			BookingID:   b.ID,
			UploadedBy:  a.ID,
			FileURL:     strings.TrimSpace(in.FileURL),
			FileName:    name,
			Type:        in.Type,
			Description: in.Description,
		})
		if err != nil {
			return err
		}

		return audit.Insert(ctx, tx, &b.ID, audit.ActionDocumentUploaded, a.ID, map[string]any{
			"documentId": created.ID, "documentType": created.Type,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func CanUpload(b *booking.Booking, a actor.Actor) error {
	if a.IsStaffOrAdmin() {
		return nil
	}
	if err := actor.CanView(a, b.OwnerID); err != nil {
		return err
	}
	if !ownerUploadStatuses[b.Status] {
		return apperr.InvalidTransition("documents cannot be added while the booking is " + string(b.Status))
	}
	return nil
}
