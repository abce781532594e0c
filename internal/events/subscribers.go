package events

import (
	"encoding/json"

	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

// RegisterBookingAudit logs and counts every booking lifecycle event.
func RegisterBookingAudit(bus *EventBus, log zerolog.Logger) {
	for _, eventType := range BookingEventTypes {
		bus.Subscribe(eventType, bookingAuditHandler(log))
	}
}

func bookingAuditHandler(log zerolog.Logger) EventHandler {
	return func(event *Event) error {
		metrics.IncBookingEvent(event.Type)

		var p BookingEventPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}

		log.Info().
			Str("event", event.Type).
			Int64("booking_id", p.BookingID).
			Int64("item_id", p.ItemID).
			Int64("booker_id", p.BookerID).
			Int64("actor_id", p.ActorID).
			Str("status", p.Status).
			Msg("booking event")
		return nil
	}
}
