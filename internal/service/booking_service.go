package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

var _ domain.BookingService = (*BookingService)(nil)

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, dto models.BookingDto) (models.BookingDetailsDto, error) {
	var booking models.Booking
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		booker, err := tx.GetUser(ctx, bookerID)
		if err != nil {
			return err
		}
		item, err := tx.GetItem(ctx, dto.ItemID)
		if err != nil {
			return err
		}
		if d := CanBookItem(*item, bookerID, dto.Start, dto.End); !d.IsAllowed() {
			return d.Err()
		}

		booking = models.BookingFromDto(dto, *booker, *item)
		return tx.CreateBooking(ctx, &booking)
	})
	if err != nil {
		return models.BookingDetailsDto{}, err
	}

	s.publishEvent(events.EventBookingCreated, booking, bookerID)
	return models.BookingToDetailsDto(booking), nil
}

// DecideBooking approves or rejects a WAITING booking. The booking is looked up
// by id and owner together, so a non-owner cannot tell it exists.
func (s *BookingService) DecideBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (models.BookingDetailsDto, error) {
	var booking *models.Booking
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		var err error
		booking, err = tx.GetBookingForOwner(ctx, bookingID, ownerID)
		if err != nil {
			return err
		}
		if d := CanDecideBooking(*booking, ownerID); !d.IsAllowed() {
			return d.Err()
		}

		booking.Status = models.StatusRejected
		if approved {
			booking.Status = models.StatusApproved
		}
		return tx.UpdateBookingStatus(ctx, booking.ID, booking.Status)
	})
	if err != nil {
		return models.BookingDetailsDto{}, err
	}

	eventType := events.EventBookingRejected
	if approved {
		eventType = events.EventBookingApproved
	}
	s.publishEvent(eventType, *booking, ownerID)

	return models.BookingToDetailsDto(*booking), nil
}

func (s *BookingService) GetBooking(ctx context.Context, callerID, bookingID int64) (models.BookingDetailsDto, error) {
	if _, err := s.store.GetUser(ctx, callerID); err != nil {
		return models.BookingDetailsDto{}, err
	}
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return models.BookingDetailsDto{}, err
	}
	if d := CanViewBooking(*booking, callerID); !d.IsAllowed() {
		return models.BookingDetailsDto{}, d.Err()
	}
	return models.BookingToDetailsDto(*booking), nil
}

// ListBookings returns the user's bookings as booker or as item owner,
// filtered by state relative to now and ordered by start descending.
func (s *BookingService) ListBookings(
	ctx context.Context,
	userID int64,
	role models.BookingRole,
	state models.BookingState,
	page models.Page,
) ([]models.BookingDetailsDto, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.store.ListBookings(ctx, domain.BookingFilter{
		UserID: userID,
		Role:   role,
		State:  state,
		Now:    s.now(),
		Page:   page,
	})
	if err != nil {
		return nil, err
	}
	return models.BookingsToDetailsDto(bookings), nil
}

func (s *BookingService) publishEvent(eventType string, booking models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.Item.Name,
		BookerID:  booking.BookerID,
		OwnerID:   booking.Item.OwnerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
