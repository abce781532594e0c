package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := NewDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", LogLevel: "silent"}, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func createItem(t *testing.T, db *DB, owner *models.User, name string, available bool) *models.Item {
	t.Helper()
	it := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(context.Background(), it))
	return it
}

func createBooking(t *testing.T, db *DB, item *models.Item, booker *models.User, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: start, End: end, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), b))
	return b
}

func TestNewDB_FileDirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "shareit.db")
	logger := zerolog.Nop()

	db, err := NewDB(config.DatabaseConfig{Driver: "sqlite", Path: dbPath}, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	logger := zerolog.Nop()
	_, err := NewDB(config.DatabaseConfig{Driver: "oracle"}, &logger)
	assert.Error(t, err)
}

func TestDB_PingAndMigrateTwice(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, db.Migrate())
}

func TestInTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(tx domain.Store) error {
		require.NoError(t, tx.CreateUser(ctx, &models.User{Name: "ghost", Email: "ghost@example.com"}))
		return models.Validationf("abort")
	})
	require.Error(t, err)

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
