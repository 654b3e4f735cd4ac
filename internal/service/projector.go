package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Projector builds the ItemInfo read model.
type Projector struct {
	bookings domain.BookingRepository
	comments domain.CommentRepository
}

func NewProjector(bookings domain.BookingRepository, comments domain.CommentRepository) *Projector {
	return &Projector{bookings: bookings, comments: comments}
}

// Project builds the detail view: the item's comments and, when the viewer owns
// the item and exactly two bookings come back, the last/next booking pair.
func (p *Projector) Project(ctx context.Context, item *models.Item, viewerID int64) (*models.ItemInfo, error) {
	comments, err := p.comments.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return p.project(ctx, item, viewerID, comments)
}

// ProjectBrief builds the list view, which carries no comments.
func (p *Projector) ProjectBrief(ctx context.Context, item *models.Item, viewerID int64) (*models.ItemInfo, error) {
	return p.project(ctx, item, viewerID, []models.Comment{})
}

func (p *Projector) project(ctx context.Context, item *models.Item, viewerID int64, comments []models.Comment) (*models.ItemInfo, error) {
	top, err := p.bookings.TopBookingsForOwner(ctx, item.ID, viewerID)
	if err != nil {
		return nil, err
	}

	info := &models.ItemInfo{Item: *item, Comments: comments}
	if len(top) == 2 {
		info.LastBooking = &models.BookingInfo{ID: top[0].ID, BookerID: top[0].BookerID}
		info.NextBooking = &models.BookingInfo{ID: top[1].ID, BookerID: top[1].BookerID}
	}
	return info, nil
}
