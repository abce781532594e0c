package service

import (
	"time"

	"shareit/internal/models"
)

// Decision is the outcome of an access or lifecycle check. A denied decision
// carries the domain error to return to the caller.
type Decision struct {
	err error
}

func Allowed() Decision { return Decision{} }

func Denied(err error) Decision { return Decision{err: err} }

func (d Decision) IsAllowed() bool { return d.err == nil }

// Err is nil for an allowed decision.
func (d Decision) Err() error { return d.err }

// CanViewBooking allows only the booker and the item owner. Anyone else gets
// the same answer as for a missing booking.
func CanViewBooking(b models.Booking, userID int64) Decision {
	if b.BookerID == userID || b.Item.OwnerID == userID {
		return Allowed()
	}
	return Denied(models.BookingNotFound(b.ID))
}

// CanDecideBooking lets the item owner approve or reject a WAITING booking.
func CanDecideBooking(b models.Booking, ownerID int64) Decision {
	if b.Item.OwnerID != ownerID {
		return Denied(models.BookingNotFound(b.ID))
	}
	if b.Status != models.StatusWaiting {
		return Denied(models.Validationf("booking with id=%d is already %s", b.ID, b.Status))
	}
	return Allowed()
}

// CanBookItem checks a new booking of item by bookerID over [start, end).
func CanBookItem(item models.Item, bookerID int64, start, end time.Time) Decision {
	if item.OwnerID == bookerID {
		return Denied(models.NotFoundf("item with id=%d is not available for its owner", item.ID))
	}
	if !item.Available {
		return Denied(models.Validationf("item with id=%d is not available", item.ID))
	}
	if start.IsZero() || end.IsZero() {
		return Denied(models.Validationf("booking start and end are required"))
	}
	if !end.After(start) {
		return Denied(models.Validationf("booking end must be after start"))
	}
	return Allowed()
}

// CanModifyItem allows only the owner to change or delete an item.
func CanModifyItem(item models.Item, userID int64) Decision {
	if item.OwnerID != userID {
		return Denied(models.Forbiddenf("user with id=%d is not the owner of item with id=%d", userID, item.ID))
	}
	return Allowed()
}

// CanComment requires a finished booking of the item by the author.
func CanComment(authorID, itemID int64, hasFinishedBooking bool) Decision {
	if !hasFinishedBooking {
		return Denied(models.Validationf("user with id=%d has no finished booking of item with id=%d", authorID, itemID))
	}
	return Allowed()
}
