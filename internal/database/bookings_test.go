package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookings_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	booker := createUser(t, db, "booker")
	item := createItem(t, db, owner, "Drill", "cordless drill", true)

	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	b := createBooking(t, db, item, booker, start, start.Add(time.Hour), models.StatusWaiting)

	got, err := db.GetBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, got.Status)
	assert.True(t, start.Equal(got.Start))
	require.NotNil(t, got.Booker)
	assert.Equal(t, "booker", got.Booker.Name)
	require.NotNil(t, got.Item)
	assert.Equal(t, owner.ID, got.Item.OwnerID)

	require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusWaiting, models.StatusApproved))
	assert.ErrorIs(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusWaiting, models.StatusApproved), ErrStaleStatus)

	got, err = db.GetBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	_, err = db.GetBookingByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookings_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	booker := createUser(t, db, "booker")
	stranger := createUser(t, db, "stranger")
	item := createItem(t, db, owner, "Drill", "cordless drill", true)

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	past := createBooking(t, db, item, booker, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	current := createBooking(t, db, item, booker, now.Add(-time.Hour), now.Add(time.Hour), models.StatusWaiting)
	future := createBooking(t, db, item, booker, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusRejected)
	// Starts exactly now: neither FUTURE nor CURRENT.
	edge := createBooking(t, db, item, booker, now, now.Add(2*time.Hour), models.StatusWaiting)

	page := models.Page{Offset: 0, Limit: 10}
	ids := func(bs []*models.Booking) []int64 {
		out := make([]int64, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	t.Run("AllOrderedByStartDesc", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{Party: models.PartyBooker, ActorID: booker.ID, Page: page})
		require.NoError(t, err)
		assert.Equal(t, []int64{future.ID, edge.ID, current.ID, past.ID}, ids(got))
	})

	t.Run("OwnerSide", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{Party: models.PartyOwner, ActorID: owner.ID, Page: page})
		require.NoError(t, err)
		assert.Len(t, got, 4)

		got, err = db.ListBookings(ctx, models.BookingQuery{Party: models.PartyOwner, ActorID: booker.ID, Page: page})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Future", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{ActorID: booker.ID, StartAfter: &now, Page: page})
		require.NoError(t, err)
		assert.Equal(t, []int64{future.ID}, ids(got))
	})

	t.Run("Past", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{ActorID: booker.ID, EndBefore: &now, Page: page})
		require.NoError(t, err)
		assert.Equal(t, []int64{past.ID}, ids(got))
	})

	t.Run("Current", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{ActorID: booker.ID, StartBefore: &now, EndAfter: &now, Page: page})
		require.NoError(t, err)
		assert.Equal(t, []int64{current.ID}, ids(got))
	})

	t.Run("Status", func(t *testing.T) {
		status := models.StatusWaiting
		got, err := db.ListBookings(ctx, models.BookingQuery{ActorID: booker.ID, Status: &status, Page: page})
		require.NoError(t, err)
		assert.Equal(t, []int64{edge.ID, current.ID}, ids(got))
	})

	t.Run("Paging", func(t *testing.T) {
		got, err := db.ListBookings(ctx, models.BookingQuery{ActorID: booker.ID, Page: models.Page{Offset: 1, Limit: 2}})
		require.NoError(t, err)
		assert.Equal(t, []int64{edge.ID, current.ID}, ids(got))
	})

	t.Run("FinishedBooking", func(t *testing.T) {
		ok, err := db.HasFinishedBooking(ctx, booker.ID, item.ID, now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = db.HasFinishedBooking(ctx, stranger.ID, item.ID, now)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBookings_TopForOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	booker := createUser(t, db, "booker")
	item := createItem(t, db, owner, "Drill", "cordless drill", true)

	base := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	createBooking(t, db, item, booker, base.Add(48*time.Hour), base.Add(49*time.Hour), models.StatusWaiting)
	first := createBooking(t, db, item, booker, base, base.Add(time.Hour), models.StatusApproved)
	second := createBooking(t, db, item, booker, base.Add(24*time.Hour), base.Add(25*time.Hour), models.StatusApproved)

	got, err := db.TopBookingsForOwner(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	got, err = db.TopBookingsForOwner(ctx, item.ID, booker.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
