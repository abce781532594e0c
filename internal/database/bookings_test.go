package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	owner, booker              *models.User
	item                       *models.Item
	past, current, future      *models.Booking
	waiting, rejected, future2 *models.Booking
}

// now is base; bookings are laid out around it.
func seedBookings(t *testing.T, db *DB) bookingFixture {
	t.Helper()
	f := bookingFixture{}
	f.owner = createUser(t, db, "owner")
	f.booker = createUser(t, db, "booker")
	f.item = createItem(t, db, f.owner, "drill", true)

	f.past = createBooking(t, db, f.item, f.booker, base.Add(-72*time.Hour), base.Add(-48*time.Hour), models.StatusApproved)
	f.current = createBooking(t, db, f.item, f.booker, base.Add(-time.Hour), base.Add(time.Hour), models.StatusApproved)
	f.future = createBooking(t, db, f.item, f.booker, base.Add(24*time.Hour), base.Add(48*time.Hour), models.StatusApproved)
	f.waiting = createBooking(t, db, f.item, f.booker, base.Add(72*time.Hour), base.Add(96*time.Hour), models.StatusWaiting)
	f.rejected = createBooking(t, db, f.item, f.booker, base.Add(2*time.Hour), base.Add(3*time.Hour), models.StatusRejected)
	f.future2 = createBooking(t, db, f.item, f.booker, base.Add(12*time.Hour), base.Add(13*time.Hour), models.StatusApproved)
	return f
}

func ids(bookings []models.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestListBookingsByState(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	tests := []struct {
		state models.BookingState
		want  []int64
	}{
		{models.StateAll, []int64{f.waiting.ID, f.future.ID, f.future2.ID, f.rejected.ID, f.current.ID, f.past.ID}},
		{models.StateCurrent, []int64{f.current.ID}},
		{models.StatePast, []int64{f.past.ID}},
		{models.StateFuture, []int64{f.waiting.ID, f.future.ID, f.future2.ID, f.rejected.ID}},
		{models.StateWaiting, []int64{f.waiting.ID}},
		{models.StateRejected, []int64{f.rejected.ID}},
	}

	for _, role := range []models.BookingRole{models.RoleBooker, models.RoleOwner} {
		userID := f.booker.ID
		if role == models.RoleOwner {
			userID = f.owner.ID
		}
		for _, tt := range tests {
			t.Run(role.String()+"/"+string(tt.state), func(t *testing.T) {
				got, err := db.ListBookings(ctx, domain.BookingFilter{
					UserID: userID,
					Role:   role,
					State:  tt.state,
					Now:    base,
					Page:   models.Page{From: 0, Size: 20},
				})
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(got))
			})
		}
	}
}

func TestListBookingsRoleIsolation(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	got, err := db.ListBookings(ctx, domain.BookingFilter{UserID: f.owner.ID, Role: models.RoleBooker, State: models.StateAll, Now: base, Page: models.DefaultPage()})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = db.ListBookings(ctx, domain.BookingFilter{UserID: f.booker.ID, Role: models.RoleOwner, State: models.StateAll, Now: base, Page: models.DefaultPage()})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListBookingsPagedWithRelations(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)

	got, err := db.ListBookings(context.Background(), domain.BookingFilter{
		UserID: f.booker.ID,
		Role:   models.RoleBooker,
		State:  models.StateAll,
		Now:    base,
		Page:   models.Page{From: 2, Size: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.future2.ID, f.rejected.ID}, ids(got))
	assert.Equal(t, "drill", got[0].Item.Name)
	assert.Equal(t, "booker", got[0].Booker.Name)
}

func TestGetBookingForOwner(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	b, err := db.GetBookingForOwner(ctx, f.waiting.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, f.item.ID, b.Item.ID)
	assert.Equal(t, f.booker.ID, b.Booker.ID)

	_, err = db.GetBookingForOwner(ctx, f.waiting.ID, f.booker.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	require.NoError(t, db.UpdateBookingStatus(ctx, f.waiting.ID, models.StatusApproved))
	b, err := db.GetBooking(ctx, f.waiting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, b.Status)

	assert.ErrorIs(t, db.UpdateBookingStatus(ctx, 9999, models.StatusApproved), models.ErrNotFound)
}

func TestLastAndNextBooking(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	last, err := db.LastBooking(ctx, f.item.ID, base)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, f.current.ID, last.ID)

	// the rejected booking starts sooner but is skipped
	next, err := db.NextBooking(ctx, f.item.ID, base)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, f.future2.ID, next.ID)

	next, err = db.NextBooking(ctx, f.item.ID, base.Add(1000*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestHasFinishedBooking(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookings(t, db)
	ctx := context.Background()

	ok, err := db.HasFinishedBooking(ctx, f.booker.ID, f.item.ID, base)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.HasFinishedBooking(ctx, f.booker.ID, f.item.ID, base.Add(-100*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = db.HasFinishedBooking(ctx, f.owner.ID, f.item.ID, base)
	require.NoError(t, err)
	assert.False(t, ok)
}
