package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/policy"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

type ItemService struct {
	items     domain.ItemRepository
	requests  domain.RequestRepository
	users     ActorResolver
	projector *Projector
	logger    *zerolog.Logger
}

func NewItemService(
	items domain.ItemRepository,
	requests domain.RequestRepository,
	users ActorResolver,
	projector *Projector,
	logger *zerolog.Logger,
) *ItemService {
	return &ItemService{
		items:     items,
		requests:  requests,
		users:     users,
		projector: projector,
		logger:    logger,
	}
}

func (s *ItemService) Create(ctx context.Context, actorID int64, item *models.Item) (*models.Item, error) {
	owner, err := s.users.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if item.RequestID != nil {
		if _, err := s.requests.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, notFound(err, domain.MsgRequestNotFound)
		}
	}

	item.OwnerID = owner.ID
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	item.Owner = &models.UserSummary{ID: owner.ID, Name: owner.Name}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", owner.ID).Msg("item created")
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateItem(actorID, item); err != nil {
		return nil, err
	}
	if patch.OwnerID != nil {
		if _, err := s.users.Resolve(ctx, *patch.OwnerID); err != nil {
			return nil, err
		}
	}

	patch.Apply(item)
	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, notFound(err, domain.MsgItemNotFound)
	}
	// Owner may have moved; reread so the embedded summary is current.
	return s.getItem(ctx, itemID)
}

func (s *ItemService) GetByID(ctx context.Context, actorID, itemID int64) (*models.ItemInfo, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.projector.Project(ctx, item, actorID)
}

// ListForOwner returns the actor's available items by id, without comments.
func (s *ItemService) ListForOwner(ctx context.Context, actorID int64, page models.Page) ([]*models.ItemInfo, error) {
	if _, err := s.users.Resolve(ctx, actorID); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}

	items, err := s.items.ListItemsByOwner(ctx, actorID, page)
	if err != nil {
		return nil, err
	}

	infos := make([]*models.ItemInfo, 0, len(items))
	for _, item := range items {
		// The page is cut before unavailable items are dropped.
		if !item.Available {
			continue
		}
		info, err := s.projector.ProjectBrief(ctx, item, actorID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Search matches text against name or description of available items, ignoring case.
// Empty text matches nothing.
func (s *ItemService) Search(ctx context.Context, _ int64, text string) ([]*models.Item, error) {
	if text == "" {
		return []*models.Item{}, nil
	}

	items, err := s.items.ListAvailableItems(ctx)
	if err != nil {
		return nil, err
	}

	folder := cases.Fold()
	needle := folder.String(text)
	found := make([]*models.Item, 0)
	for _, item := range items {
		if !item.Available {
			continue
		}
		if strings.Contains(folder.String(item.Name), needle) ||
			strings.Contains(folder.String(item.Description), needle) {
			found = append(found, item)
		}
	}
	return found, nil
}

func (s *ItemService) getItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.MsgItemNotFound)
	}
	return item, nil
}
