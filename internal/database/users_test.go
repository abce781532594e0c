package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	assert.NotZero(t, user.ID)

	found, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)

	found.Name = "Alice"
	require.NoError(t, db.UpdateUser(ctx, found))

	found, err = db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)

	createUser(t, db, "bob")
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, db.DeleteUser(ctx, user.ID), models.ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := db.CreateUser(ctx, &models.User{Name: "other", Email: alice.Email})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	taken, err := db.EmailTaken(ctx, alice.Email, bob.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = db.EmailTaken(ctx, alice.Email, alice.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateMissingUser(t *testing.T) {
	db := setupTestDB(t)
	err := db.UpdateUser(context.Background(), &models.User{ID: 42, Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	booker := createUser(t, db, "booker")
	item := createItem(t, db, owner, "drill", true)
	booking := createBooking(t, db, item, booker, base, base.Add(time.Hour), models.StatusWaiting)
	require.NoError(t, db.CreateComment(ctx, &models.Comment{Text: "ok", ItemID: item.ID, AuthorID: booker.ID, Created: base}))

	require.NoError(t, db.DeleteUser(ctx, owner.ID))

	_, err := db.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = db.GetBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
