package database

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return db.conn(ctx).Omit(clause.Associations).Create(booking).Error
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	res := db.conn(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.BookingNotFound(id)
	}
	return nil
}

func (db *DB) withRelations(ctx context.Context) *gorm.DB {
	return db.conn(ctx).Preload("Item").Preload("Booker")
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	if err := db.withRelations(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, models.BookingNotFound(id))
	}
	return &b, nil
}

// GetBookingForOwner finds a booking only if its item belongs to ownerID.
func (db *DB) GetBookingForOwner(ctx context.Context, id, ownerID int64) (*models.Booking, error) {
	var b models.Booking
	err := db.withRelations(ctx).
		Where("bookings.id = ?", id).
		Where("bookings.item_id IN (?)", db.ownedItemIDs(ctx, ownerID)).
		First(&b).Error
	if err != nil {
		return nil, notFound(err, models.BookingNotFound(id))
	}
	return &b, nil
}

func (db *DB) ownedItemIDs(ctx context.Context, ownerID int64) *gorm.DB {
	return db.conn(ctx).Model(&models.Item{}).Select("id").Where("owner_id = ?", ownerID)
}

// ListBookings applies role, state and page to the bookings table, newest start first.
func (db *DB) ListBookings(ctx context.Context, f domain.BookingFilter) ([]models.Booking, error) {
	q := db.withRelations(ctx).Model(&models.Booking{})

	switch f.Role {
	case models.RoleOwner:
		q = q.Where("bookings.item_id IN (?)", db.ownedItemIDs(ctx, f.UserID))
	default:
		q = q.Where("bookings.booker_id = ?", f.UserID)
	}

	now := f.Now.UTC()
	switch f.State {
	case models.StateCurrent:
		q = q.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
	case models.StatePast:
		q = q.Where("bookings.end_date < ?", now)
	case models.StateFuture:
		q = q.Where("bookings.start_date > ?", now)
	case models.StateWaiting:
		q = q.Where("bookings.status = ?", models.StatusWaiting)
	case models.StateRejected:
		q = q.Where("bookings.status = ?", models.StatusRejected)
	}

	var bookings []models.Booking
	err := q.Order("bookings.start_date DESC").
		Order("bookings.id DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit()).
		Find(&bookings).Error
	return bookings, err
}

// LastBooking is the latest non-rejected booking of the item that started before now.
func (db *DB) LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return db.firstBooking(db.conn(ctx).
		Where("item_id = ? AND status <> ? AND start_date < ?", itemID, models.StatusRejected, now.UTC()).
		Order("start_date DESC"))
}

// NextBooking is the earliest non-rejected booking of the item that starts after now.
func (db *DB) NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return db.firstBooking(db.conn(ctx).
		Where("item_id = ? AND status <> ? AND start_date > ?", itemID, models.StatusRejected, now.UTC()).
		Order("start_date ASC"))
}

func (db *DB) firstBooking(q *gorm.DB) (*models.Booking, error) {
	var found []models.Booking
	if err := q.Limit(1).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// HasFinishedBooking reports whether bookerID has a non-rejected booking of itemID that ended before now.
func (db *DB) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var n int64
	err := db.conn(ctx).Model(&models.Booking{}).
		Where("booker_id = ? AND item_id = ? AND end_date < ? AND status <> ?",
			bookerID, itemID, now.UTC(), models.StatusRejected).
		Count(&n).Error
	return n > 0, err
}
