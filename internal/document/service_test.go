package document

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebooking/internal/approval"
	"venuebooking/internal/booking"
	"venuebooking/internal/notification"
	"venuebooking/internal/testdb"
	"venuebooking/internal/venue"
)

func TestVerify_LastDocumentTransitionsOnce(t *testing.T) {
	pool := testdb.Open(t)
	ctx := context.Background()
	owner := testdb.User(t, pool, "student", "")
	staff := testdb.User(t, pool, "staff", venue.DepartmentSA)
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")

	start := time.Now().Add(96 * time.Hour).Truncate(time.Hour)
	b, err := (&booking.Service{DB: pool}).Create(ctx, owner, booking.CreateInput{
		VenueID:        v.ID,
		Title:          "Film society screening",
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		AttendeesCount: 40,
	})
	require.NoError(t, err)

	_, err = (&approval.Service{DB: pool}).ApplyAction(ctx, b.ID, "request_documents", staff, "Dean approval letter needed")
	require.NoError(t, err)

	svc := &Service{DB: pool}
	first, err := svc.Upload(ctx, b.ID, owner, UploadInput{FileURL: "https://files.test/dean.pdf", Type: TypeDeanApproval})
	require.NoError(t, err)
	second, err := svc.Upload(ctx, b.ID, owner, UploadInput{FileURL: "https://files.test/proposal.pdf", Type: TypeEventProposal})
	require.NoError(t, err)

	backToPending := func() int {
		return testdb.Count(t, pool,
			`SELECT COUNT(*) FROM booking_history WHERE booking_id = $1 AND previous_status = 'documents_pending' AND new_status = 'pending'`, b.ID)
	}
	reload := func() *booking.Booking {
		got, err := booking.NewRepository(pool).GetByID(ctx, b.ID)
		require.NoError(t, err)
		return got
	}

	res, err := svc.Verify(ctx, b.ID, first.ID, staff)
	require.NoError(t, err)
	assert.False(t, res.AllVerified)
	assert.Empty(t, res.HistoryID)
	assert.Equal(t, booking.StatusDocumentsPending, reload().Status)
	assert.Equal(t, 0, backToPending())

	res, err = svc.Verify(ctx, b.ID, second.ID, staff)
	require.NoError(t, err)
	assert.True(t, res.AllVerified)
	assert.NotEmpty(t, res.HistoryID)

	got := reload()
	assert.Equal(t, booking.StatusPending, got.Status)
	assert.True(t, got.DocumentsVerified)
	assert.Equal(t, 1, backToPending())

	title, _ := notification.StatusMessage(b.BookingCode, b.Title, string(booking.StatusPending), CommentAllVerified)
	assert.Equal(t, 1, testdb.Count(t, pool,
		`SELECT COUNT(*) FROM notifications WHERE booking_id = $1 AND recipient_id = $2 AND notification_type = 'booking_status' AND title = $3`,
		b.ID, owner.ID, title))

	// Re-verifying after the transition must not fire it again.
	res, err = svc.Verify(ctx, b.ID, second.ID, staff)
	require.NoError(t, err)
	assert.True(t, res.AllVerified)
	assert.Empty(t, res.HistoryID)
	assert.Equal(t, 1, backToPending())
}

func TestVerify_NotificationFailureRollsBack(t *testing.T) {
	pool := testdb.Open(t)
	ctx := context.Background()
	owner := testdb.User(t, pool, "student", "")
	staff := testdb.User(t, pool, "staff", venue.DepartmentSA)
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")

	start := time.Now().Add(96 * time.Hour).Truncate(time.Hour)
	b, err := (&booking.Service{DB: pool}).Create(ctx, owner, booking.CreateInput{
		VenueID:        v.ID,
		Title:          "Chess open",
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		AttendeesCount: 10,
	})
	require.NoError(t, err)
	_, err = (&approval.Service{DB: pool}).ApplyAction(ctx, b.ID, "request_documents", staff, "")
	require.NoError(t, err)

	svc := &Service{DB: pool}
	doc, err := svc.Upload(ctx, b.ID, owner, UploadInput{FileURL: "https://files.test/id.pdf", Type: TypeIdentification})
	require.NoError(t, err)

	testdb.FailInserts(t, pool, "notifications", b.ID)
	_, err = svc.Verify(ctx, b.ID, doc.ID, staff)
	require.Error(t, err)

	got, err := booking.NewRepository(pool).GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusDocumentsPending, got.Status)
	assert.False(t, got.DocumentsVerified)
	assert.Equal(t, 0, testdb.Count(t, pool,
		`SELECT COUNT(*) FROM booking_documents WHERE booking_id = $1 AND is_verified`, b.ID))
}
