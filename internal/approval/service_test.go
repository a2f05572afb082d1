package approval

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/booking"
	"venuebooking/internal/testdb"
	"venuebooking/internal/venue"
)

type fixture struct {
	pool    *pgxpool.Pool
	svc     *Service
	owner   actor.Actor
	staff   actor.Actor
	booking *booking.Booking
}

// newFixture seeds a pending booking at an sa venue.
func newFixture(t *testing.T) fixture {
	t.Helper()
	pool := testdb.Open(t)
	owner := testdb.User(t, pool, "student", "")
	staff := testdb.User(t, pool, "staff", venue.DepartmentSA)
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")

	start := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	b, err := (&booking.Service{DB: pool}).Create(context.Background(), owner, booking.CreateInput{
		VenueID:        v.ID,
		Title:          "Debate society final",
		StartTime:      start,
		EndTime:        start.Add(3 * time.Hour),
		AttendeesCount: 60,
	})
	require.NoError(t, err)
	require.Equal(t, booking.StatusPending, b.Status)

	return fixture{pool: pool, svc: &Service{DB: pool}, owner: owner, staff: staff, booking: b}
}

func (f fixture) status(t *testing.T) booking.Status {
	t.Helper()
	b, err := booking.NewRepository(f.pool).GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	return b.Status
}

func (f fixture) count(t *testing.T, table string) int {
	t.Helper()
	return testdb.Count(t, f.pool, `SELECT COUNT(*) FROM `+table+` WHERE booking_id = $1`, f.booking.ID)
}

func TestApplyAction_ApproveWritesOneHistoryRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.ApplyAction(ctx, f.booking.ID, "approve", f.staff, "")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, res.Status)
	assert.NotEmpty(t, res.HistoryID)

	assert.Equal(t, 1, f.count(t, "booking_history"))
	var prev, next string
	var changedBy *string
	err = f.pool.QueryRow(ctx,
		`SELECT previous_status, new_status, changed_by::text FROM booking_history WHERE id = $1`, res.HistoryID,
	).Scan(&prev, &next, &changedBy)
	require.NoError(t, err)
	assert.Equal(t, "pending", prev)
	assert.Equal(t, "approved", next)
	require.NotNil(t, changedBy)
	assert.Equal(t, f.staff.ID, *changedBy)

	b, err := booking.NewRepository(f.pool).GetByID(ctx, f.booking.ID)
	require.NoError(t, err)
	require.NotNil(t, b.ApprovedBy)
	assert.Equal(t, f.staff.ID, *b.ApprovedBy)
	assert.NotNil(t, b.ApprovalDate)

	assert.Equal(t, 1, testdb.Count(t, f.pool,
		`SELECT COUNT(*) FROM notifications WHERE booking_id = $1 AND recipient_id = $2 AND notification_type = 'booking_status'`,
		f.booking.ID, f.owner.ID))
	assert.Equal(t, 0, f.count(t, "booking_feedback"), "no comment, no feedback")
}

func TestApplyAction_InvalidActionAndGuardLeaveBookingUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ppk := testdb.User(t, f.pool, "staff", venue.DepartmentPPK)

	_, err := f.svc.ApplyAction(ctx, f.booking.ID, "teleport", f.staff, "")
	require.ErrorIs(t, err, apperr.ErrInvalidAction)

	_, err = f.svc.ApplyAction(ctx, f.booking.ID, "approve", ppk, "")
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)

	_, err = f.svc.ApplyAction(ctx, f.booking.ID, "approve", f.owner, "")
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)

	assert.Equal(t, booking.StatusPending, f.status(t))
	assert.Equal(t, 0, f.count(t, "booking_history"))
}

func TestApplyAction_TerminalBookingUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, f.booking.ID, f.owner)
	require.NoError(t, err)

	_, err = f.svc.ApplyAction(ctx, f.booking.ID, "approve", f.staff, "")
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)

	assert.Equal(t, booking.StatusCancelled, f.status(t))
	assert.Equal(t, 1, f.count(t, "booking_history"))
}

func TestApplyAction_FeedbackFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	testdb.FailInserts(t, f.pool, "booking_feedback", f.booking.ID)

	_, err := f.svc.ApplyAction(context.Background(), f.booking.ID, "reject", f.staff, "Room double-booked")
	require.Error(t, err)

	assert.Equal(t, booking.StatusPending, f.status(t))
	assert.Equal(t, 0, f.count(t, "booking_history"))
	assert.Equal(t, 0, f.count(t, "booking_feedback"))
	assert.Equal(t, 0, testdb.Count(t, f.pool,
		`SELECT COUNT(*) FROM notifications WHERE booking_id = $1 AND recipient_id = $2`, f.booking.ID, f.owner.ID))
}

func TestApplyAction_AuditFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	testdb.FailInserts(t, f.pool, "audit_logs", f.booking.ID)

	_, err := f.svc.ApplyAction(context.Background(), f.booking.ID, "approve", f.staff, "Looks good")
	require.Error(t, err)

	assert.Equal(t, booking.StatusPending, f.status(t))
	assert.Equal(t, 0, f.count(t, "booking_history"))
	assert.Equal(t, 0, f.count(t, "booking_feedback"))
}
