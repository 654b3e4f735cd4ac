package service

import (
	"context"
	"errors"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
	"shareit/internal/policy"

	"github.com/rs/zerolog"
)

type BookingService struct {
	bookings domain.BookingRepository
	items    domain.ItemRepository
	users    ActorResolver
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewBookingService(
	bookings domain.BookingRepository,
	items domain.ItemRepository,
	users ActorResolver,
	eventBus domain.EventPublisher,
	clock domain.Clock,
	logger *zerolog.Logger,
) *BookingService {
	if clock == nil {
		clock = RealClock()
	}
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

// Create books an item for the actor. The new booking waits for the owner's decision.
// Overlapping windows on the same item are not rejected.
func (s *BookingService) Create(ctx context.Context, actorID int64, req models.BookingRequest) (*models.Booking, error) {
	booker, err := s.users.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, notFound(err, domain.MsgItemNotFound)
	}
	if !item.Available {
		return nil, domain.NewBadRequestError(domain.MsgItemNotAvailable)
	}
	if err := policy.CanCreateBooking(booker.ID, item); err != nil {
		return nil, err
	}
	start, end := storePrecision(req.Start), storePrecision(req.End)
	if !start.Before(end) {
		return nil, domain.NewBadRequestError(domain.MsgStartAfterEnd)
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	booking.Booker = &models.UserSummary{ID: booker.ID, Name: booker.Name}
	booking.Item = &models.ItemSummary{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, actorID)

	return booking, nil
}

// SetApproval lets the item owner approve or reject a booking. Approving an
// approved booking fails; rejecting a rejected one is allowed.
func (s *BookingService) SetApproval(ctx context.Context, actorID, bookingID int64, approved bool) (*models.Booking, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanManageBooking(actorID, booking); err != nil {
		return nil, err
	}

	next := models.StatusRejected
	if approved {
		next = models.StatusApproved
	}
	if next == models.StatusApproved && booking.Status == models.StatusApproved {
		return nil, domain.NewBadRequestError(domain.MsgApprovedAlreadySet)
	}

	if err := s.bookings.UpdateBookingStatus(ctx, booking.ID, booking.Status, next); err != nil {
		if errors.Is(err, database.ErrStaleStatus) {
			// Another decision landed between the read and the write.
			return nil, domain.NewBadRequestError(domain.MsgApprovedAlreadySet)
		}
		return nil, err
	}
	booking.Status = next

	eventType := events.EventBookingRejected
	if approved {
		eventType = events.EventBookingApproved
	}
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("status", string(next)).
		Int64("owner_id", actorID).
		Msg("booking status changed")
	s.publishEvent(eventType, booking, actorID)

	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, actorID, bookingID int64) (*models.Booking, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewBooking(actorID, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListForBooker(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error) {
	return s.list(ctx, models.PartyBooker, actorID, state, page)
}

func (s *BookingService) ListForOwner(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error) {
	return s.list(ctx, models.PartyOwner, actorID, state, page)
}

func (s *BookingService) list(ctx context.Context, party models.BookingParty, actorID int64, raw string, page models.Page) ([]*models.Booking, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	state, ok := models.ParseBookingState(raw)
	if !ok {
		return nil, domain.NewUnknownStateError(raw)
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}

	q, err := s.buildQuery(party, actorID, state, page)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListBookings(ctx, q)
}

func (s *BookingService) buildQuery(party models.BookingParty, actorID int64, state models.BookingState, page models.Page) (models.BookingQuery, error) {
	q := models.BookingQuery{Party: party, ActorID: actorID, Page: page}
	now := storePrecision(s.clock.Now())

	switch state {
	case models.StateAll:
	case models.StateApproved:
		q.Status = statusPtr(models.StatusApproved)
	case models.StateWaiting:
		q.Status = statusPtr(models.StatusWaiting)
	case models.StateRejected:
		q.Status = statusPtr(models.StatusRejected)
	case models.StateFuture:
		q.StartAfter = &now
	case models.StatePast:
		q.EndBefore = &now
	case models.StateCurrent:
		q.StartBefore = &now
		q.EndAfter = &now
	default:
		return q, domain.NewUnknownStateError(state.String())
	}
	return q, nil
}

func (s *BookingService) getBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.MsgBookingNotFound)
	}
	return booking, nil
}

func (s *BookingService) publishEvent(eventType string, b *models.Booking, changedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   b.ID,
		ItemID:      b.ItemID,
		BookerID:    b.BookerID,
		Status:      string(b.Status),
		Start:       b.Start,
		End:         b.End,
		ChangedByID: changedBy,
	}
	if b.Item != nil {
		payload.OwnerID = b.Item.OwnerID
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Int64("booking_id", b.ID).Msg("failed to publish event")
	}
}

func statusPtr(s models.BookingStatus) *models.BookingStatus {
	return &s
}
