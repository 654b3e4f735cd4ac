package main

import (
	"shareit/internal/events"
	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

// subscribeEvents attaches the audit log and transition counters to the bus.
func subscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
	} {
		bus.Subscribe(eventType, func(e *events.Event) error {
			var p events.BookingEventPayload
			if err := e.Decode(&p); err != nil {
				return err
			}
			metrics.IncBookingTransition(p.Status)
			logger.Info().
				Str("event", e.Type).
				Int64("booking_id", p.BookingID).
				Int64("item_id", p.ItemID).
				Int64("booker_id", p.BookerID).
				Int64("owner_id", p.OwnerID).
				Str("status", p.Status).
				Msg("booking event")
			return nil
		})
	}

	bus.Subscribe(events.EventCommentAdded, func(e *events.Event) error {
		var p events.CommentEventPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		logger.Info().
			Str("event", e.Type).
			Int64("comment_id", p.CommentID).
			Int64("item_id", p.ItemID).
			Int64("author_id", p.AuthorID).
			Msg("comment event")
		return nil
	})
}
