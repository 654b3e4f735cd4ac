package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	requests domain.RequestRepository
	items    domain.ItemRepository
	users    ActorResolver
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewRequestService(
	requests domain.RequestRepository,
	items domain.ItemRepository,
	users ActorResolver,
	clock domain.Clock,
	logger *zerolog.Logger,
) *RequestService {
	if clock == nil {
		clock = RealClock()
	}
	return &RequestService{requests: requests, items: items, users: users, clock: clock, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, actorID int64, description string) (*models.Request, error) {
	owner, err := s.users.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	request := &models.Request{
		Description: description,
		OwnerID:     owner.ID,
		Created:     s.clock.Now(),
		Items:       []models.Item{},
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("owner_id", owner.ID).Msg("request created")
	return request, nil
}

// ListForOwner returns the actor's own requests, oldest first.
func (s *RequestService) ListForOwner(ctx context.Context, actorID int64) ([]*models.Request, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListRequestsByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListExcludingOwner returns everybody else's requests, oldest first.
func (s *RequestService) ListExcludingOwner(ctx context.Context, actorID int64, page models.Page) ([]*models.Request, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListRequestsExcludingOwner(ctx, actorID, page)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, actorID, requestID int64) (*models.Request, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, domain.MsgRequestNotFound)
	}
	if err := s.attachItems(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) withItems(ctx context.Context, requests []*models.Request) ([]*models.Request, error) {
	for _, request := range requests {
		if err := s.attachItems(ctx, request); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

func (s *RequestService) attachItems(ctx context.Context, request *models.Request) error {
	items, err := s.items.ListItemsByRequest(ctx, request.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.Item{}
	}
	request.Items = items
	return nil
}
