package venue_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebooking/internal/testdb"
	"venuebooking/internal/venue"
)

func TestUpsert_IsIdempotentByName(t *testing.T) {
	pool := testdb.Open(t)
	ctx := context.Background()
	repo := venue.NewRepository(pool)
	name := "Seed Hall " + uuid.NewString()

	first, err := repo.Upsert(ctx, venue.Venue{
		Name:        name,
		Capacity:    50,
		HandledBy:   venue.DepartmentSA,
		HourlyRate:  decimal.Zero,
		IsAvailable: true,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, venue.Venue{
		Name:        name,
		Capacity:    120,
		HandledBy:   venue.DepartmentPPK,
		HourlyRate:  decimal.RequireFromString("40.00"),
		IsAvailable: true,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 120, second.Capacity)
	assert.Equal(t, venue.DepartmentPPK, second.HandledBy)
	assert.True(t, second.HourlyRate.Equal(decimal.RequireFromString("40")))
	assert.Equal(t, 1, testdb.Count(t, pool, `SELECT COUNT(*) FROM venues WHERE name = $1`, name))
}
