package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
	"shareit/internal/policy"

	"github.com/rs/zerolog"
)

type CommentService struct {
	comments domain.CommentRepository
	bookings domain.BookingRepository
	items    domain.ItemRepository
	users    ActorResolver
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewCommentService(
	comments domain.CommentRepository,
	bookings domain.BookingRepository,
	items domain.ItemRepository,
	users ActorResolver,
	eventBus domain.EventPublisher,
	clock domain.Clock,
	logger *zerolog.Logger,
) *CommentService {
	if clock == nil {
		clock = RealClock()
	}
	return &CommentService{
		comments: comments,
		bookings: bookings,
		items:    items,
		users:    users,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

// AddComment stores a comment from a user who has finished renting the item.
func (s *CommentService) AddComment(ctx context.Context, actorID, itemID int64, text string) (*models.Comment, error) {
	author, err := s.users.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, domain.MsgItemNotFound)
	}

	now := s.clock.Now()
	finished, err := s.bookings.HasFinishedBooking(ctx, author.ID, item.ID, now)
	if err != nil {
		return nil, err
	}
	if err := policy.CanComment(finished); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", item.ID).Msg("comment added")
	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: author.ID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("failed to publish event")
		}
	}
	return comment, nil
}
