package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebooking/internal/apperr"
	"venuebooking/internal/testdb"
	"venuebooking/internal/venue"
)

func createInput(venueID string) CreateInput {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return CreateInput{
		VenueID:        venueID,
		Title:          "Robotics club meetup",
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		AttendeesCount: 30,
	}
}

func TestNextCode_ConcurrentUnique(t *testing.T) {
	pool := testdb.Open(t)
	owner := testdb.User(t, pool, "student", "")
	v := testdb.Venue(t, pool, "library", "0")
	svc := &Service{DB: pool}

	const n = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[string]bool{}
		errs  []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := svc.Create(context.Background(), owner, createInput(v.ID))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			codes[b.BookingCode] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, codes, n, "every booking gets its own code")
	for code := range codes {
		assert.True(t, strings.HasPrefix(code, "BK-"), code)
	}
}

func TestCreate_CodeMonthMatchesCreatedAt(t *testing.T) {
	pool := testdb.Open(t)
	owner := testdb.User(t, pool, "student", "")
	v := testdb.Venue(t, pool, "library", "0")

	b, err := (&Service{DB: pool}).Create(context.Background(), owner, createInput(v.ID))
	require.NoError(t, err)

	parts := strings.Split(b.BookingCode, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, b.CreatedAt.UTC().Format("200601"), parts[1])
}

func TestCreate_SAVenueNotifiesDepartment(t *testing.T) {
	pool := testdb.Open(t)
	owner := testdb.User(t, pool, "student", "")
	staff := testdb.User(t, pool, "staff", venue.DepartmentSA)
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")

	b, err := (&Service{DB: pool}).Create(context.Background(), owner, createInput(v.ID))
	require.NoError(t, err)
	assert.True(t, b.RequiresApproval)

	n := testdb.Count(t, pool,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND booking_id = $2 AND notification_type = 'approval_request'`,
		staff.ID, b.ID)
	assert.Equal(t, 1, n)
}

func TestUpdate_KeepsFrozenFlags(t *testing.T) {
	pool := testdb.Open(t)
	ctx := context.Background()
	owner := testdb.User(t, pool, "student", "")
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")
	svc := &Service{DB: pool}

	created, err := svc.Create(ctx, owner, createInput(v.ID))
	require.NoError(t, err)

	// Rerouting the venue must not reach existing bookings.
	_, err = pool.Exec(ctx, `UPDATE venues SET handled_by = $2, hourly_rate = 80 WHERE id = $1`, v.ID, venue.DepartmentPPK)
	require.NoError(t, err)

	title := "Robotics club finals"
	attendees := 45
	end := created.EndTime.Add(time.Hour)
	updated, err := svc.Update(ctx, created.ID, owner, UpdateInput{Title: &title, AttendeesCount: &attendees, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	got, err := NewRepository(pool).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, attendees, got.AttendeesCount)
	assert.True(t, got.EndTime.Equal(end))
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, created.RequiresApproval, got.RequiresApproval)
	assert.Equal(t, created.DocumentsRequired, got.DocumentsRequired)
	assert.Equal(t, created.PaymentRequired, got.PaymentRequired)
	assert.True(t, got.PaymentAmount.Equal(created.PaymentAmount))
}

func TestUpdate_OnlyWhilePending(t *testing.T) {
	pool := testdb.Open(t)
	ctx := context.Background()
	owner := testdb.User(t, pool, "student", "")
	stranger := testdb.User(t, pool, "student", "")
	v := testdb.Venue(t, pool, venue.DepartmentSA, "0")
	svc := &Service{DB: pool}

	created, err := svc.Create(ctx, owner, createInput(v.ID))
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(ctx, created.ID, stranger, UpdateInput{Title: &title})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = pool.Exec(ctx, `UPDATE bookings SET status = 'under_review' WHERE id = $1`, created.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, owner, UpdateInput{Title: &title})
	require.ErrorIs(t, err, apperr.ErrValidation)

	got, err := NewRepository(pool).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}
