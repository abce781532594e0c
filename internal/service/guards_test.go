package service

import (
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanViewBooking(t *testing.T) {
	b := models.Booking{ID: 1, BookerID: 2, Item: models.Item{OwnerID: 3}}

	assert.True(t, CanViewBooking(b, 2).IsAllowed())
	assert.True(t, CanViewBooking(b, 3).IsAllowed())

	d := CanViewBooking(b, 4)
	assert.False(t, d.IsAllowed())
	assert.ErrorIs(t, d.Err(), models.ErrNotFound)
}

func TestCanDecideBooking(t *testing.T) {
	b := models.Booking{ID: 1, BookerID: 2, Item: models.Item{OwnerID: 3}, Status: models.StatusWaiting}

	assert.True(t, CanDecideBooking(b, 3).IsAllowed())
	assert.ErrorIs(t, CanDecideBooking(b, 2).Err(), models.ErrNotFound)

	b.Status = models.StatusApproved
	assert.ErrorIs(t, CanDecideBooking(b, 3).Err(), models.ErrValidation)
}

func TestCanBookItem(t *testing.T) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	item := models.Item{ID: 5, OwnerID: 1, Available: true}

	tests := []struct {
		name    string
		item    models.Item
		booker  int64
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"ok", item, 2, start, end, nil},
		{"own item", item, 1, start, end, models.ErrNotFound},
		{"unavailable", models.Item{ID: 5, OwnerID: 1}, 2, start, end, models.ErrValidation},
		{"end equals start", item, 2, start, start, models.ErrValidation},
		{"end before start", item, 2, end, start, models.ErrValidation},
		{"missing times", item, 2, time.Time{}, end, models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanBookItem(tt.item, tt.booker, tt.start, tt.end)
			if tt.wantErr == nil {
				assert.True(t, d.IsAllowed())
				assert.NoError(t, d.Err())
				return
			}
			assert.False(t, d.IsAllowed())
			assert.ErrorIs(t, d.Err(), tt.wantErr)
		})
	}
}

func TestCanModifyItem(t *testing.T) {
	item := models.Item{ID: 5, OwnerID: 1}
	assert.True(t, CanModifyItem(item, 1).IsAllowed())
	assert.ErrorIs(t, CanModifyItem(item, 2).Err(), models.ErrForbidden)
}

func TestCanComment(t *testing.T) {
	assert.True(t, CanComment(1, 2, true).IsAllowed())
	assert.ErrorIs(t, CanComment(1, 2, false).Err(), models.ErrValidation)
}
