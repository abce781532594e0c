package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

type testEnv struct {
	store    *database.DB
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
	events   *mockPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	store, err := database.NewDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", LogLevel: "silent"}, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	pub := &mockPublisher{}
	env := &testEnv{
		store:    store,
		users:    NewUserService(store, &logger),
		items:    NewItemService(store, &logger),
		bookings: NewBookingService(store, pub, &logger),
		requests: NewRequestService(store, &logger),
		events:   pub,
	}
	env.items.now = fixedClock
	env.bookings.now = fixedClock
	env.requests.now = fixedClock
	return env
}

func (e *testEnv) user(t *testing.T, name string) models.UserDto {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), models.UserDto{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) item(t *testing.T, ownerID int64, name string, available bool) models.ItemDto {
	t.Helper()
	it, err := e.items.AddItem(context.Background(), ownerID, models.ItemDto{
		Name:        name,
		Description: name + " for rent",
		Available:   &available,
	})
	require.NoError(t, err)
	return it
}

// booking inserts directly so that past bookings can be created.
func (e *testEnv) booking(t *testing.T, itemID, bookerID int64, start, end time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	b := models.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	require.NoError(t, e.store.CreateBooking(context.Background(), &b))
	return b
}

func boolPtr(v bool) *bool { return &v }
