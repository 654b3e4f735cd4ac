package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Item, error)
	ListAvailableItems(ctx context.Context) ([]*models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	// UpdateBookingStatus moves the booking from one status to another and fails when
	// the stored status is no longer from.
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	ListBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error)
	// TopBookingsForOwner returns up to two bookings of the item, ordered by start
	// ascending, provided the item belongs to ownerID.
	TopBookingsForOwner(ctx context.Context, itemID, ownerID int64) ([]*models.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequestByID(ctx context.Context, id int64) (*models.Request, error)
	ListRequestsByOwner(ctx context.Context, ownerID int64) ([]*models.Request, error)
	ListRequestsExcludingOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Request, error)
}

// Repository is the full store surface.
type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
	Ping(ctx context.Context) error
}

// QuotaRepository counts calls per key inside a fixed window.
type QuotaRepository interface {
	CheckRateLimit(ctx context.Context, key int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type Clock interface {
	Now() time.Time
}
