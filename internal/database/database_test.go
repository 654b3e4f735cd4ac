package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func createItem(t *testing.T, db *DB, owner *models.User, name, description string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: description, Available: available, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func createBooking(t *testing.T, db *DB, item *models.Item, booker *models.User, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: start, End: end, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), b))
	return b
}

func TestNewDB_Memory(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Ping(ctx))

	empty, err := db.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	db.Close()

	ctx := context.Background()
	_, err = db.ListUsers(ctx)
	assert.Error(t, err)
	assert.Error(t, db.CreateItem(ctx, &models.Item{}))
	_, err = db.ListBookings(ctx, models.BookingQuery{Page: models.Page{Limit: 10}})
	assert.Error(t, err)
	_, err = db.HasFinishedBooking(ctx, 1, 1, time.Now())
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ann := createUser(t, db, "ann")
	assert.NotZero(t, ann.ID)

	t.Run("DuplicateEmail", func(t *testing.T) {
		err := db.CreateUser(ctx, &models.User{Name: "other", Email: ann.Email})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetUserByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateAndList", func(t *testing.T) {
		bob := createUser(t, db, "bob")
		bob.Email = ann.Email
		assert.ErrorIs(t, db.UpdateUser(ctx, bob), ErrDuplicateEmail)

		bob.Email = "robert@example.com"
		require.NoError(t, db.UpdateUser(ctx, bob))

		users, err := db.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "robert@example.com", users[1].Email)
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		carl := createUser(t, db, "carl")
		item := createItem(t, db, carl, "tent", "two person tent", true)

		require.NoError(t, db.DeleteUser(ctx, carl.ID))
		_, err := db.GetItemByID(ctx, item.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, db.DeleteUser(ctx, carl.ID), ErrNotFound)
	})
}

func TestItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")

	drill := createItem(t, db, owner, "Drill", "cordless drill", true)
	createItem(t, db, owner, "Saw", "circular saw", false)
	createItem(t, db, other, "Kayak", "single kayak", true)

	got, err := db.GetItemByID(ctx, drill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Name)
	assert.Nil(t, got.RequestID)

	got.Available = false
	got.Name = "Hammer drill"
	require.NoError(t, db.UpdateItem(ctx, got))
	updated, err := db.GetItemByID(ctx, drill.ID)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Hammer drill", updated.Name)

	owned, err := db.ListItemsByOwner(ctx, owner.ID, models.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Less(t, owned[0].ID, owned[1].ID)

	paged, err := db.ListItemsByOwner(ctx, owner.ID, models.Page{Offset: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, paged, 1)

	available, err := db.ListAvailableItems(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Kayak", available[0].Name)
}

func TestRequestsAndLinkedItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")

	base := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	r1 := &models.Request{Description: "need a ladder", OwnerID: ann.ID, Created: base}
	r2 := &models.Request{Description: "need a tent", OwnerID: bob.ID, Created: base.Add(time.Hour)}
	r3 := &models.Request{Description: "need a bike", OwnerID: bob.ID, Created: base.Add(-time.Hour)}
	for _, r := range []*models.Request{r1, r2, r3} {
		require.NoError(t, db.CreateRequest(ctx, r))
	}

	ladder := &models.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: bob.ID, RequestID: &r1.ID}
	require.NoError(t, db.CreateItem(ctx, ladder))

	got, err := db.GetRequestByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.True(t, base.Equal(got.Created))

	items, err := db.ListItemsByRequest(ctx, r1.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].RequestID)
	assert.Equal(t, r1.ID, *items[0].RequestID)

	byOwner, err := db.ListRequestsByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	assert.Equal(t, r3.ID, byOwner[0].ID)
	assert.Equal(t, r2.ID, byOwner[1].ID)

	others, err := db.ListRequestsExcludingOwner(ctx, ann.ID, models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, others, 2)
	for _, r := range others {
		assert.NotEqual(t, ann.ID, r.OwnerID)
	}

	_, err = db.GetRequestByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	author := createUser(t, db, "author")
	item := createItem(t, db, owner, "Drill", "cordless drill", true)

	created := time.Date(2030, 1, 1, 10, 0, 0, 123456789, time.UTC)
	c := &models.Comment{Text: "great drill", ItemID: item.ID, AuthorID: author.ID, Created: created}
	require.NoError(t, db.CreateComment(ctx, c))
	assert.NotZero(t, c.ID)

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "author", comments[0].AuthorName)
	assert.True(t, c.Created.Equal(comments[0].Created))
}
