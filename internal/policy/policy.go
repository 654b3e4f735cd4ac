// Package policy holds the access decisions shared by the services. Every check
// is a pure function of the actor id and the already-loaded resource.
package policy

import (
	"shareit/internal/domain"
	"shareit/internal/models"
)

// CanCreateBooking rejects owners booking their own items.
func CanCreateBooking(actorID int64, item *models.Item) error {
	if actorID == item.OwnerID {
		return domain.NewForbiddenError(domain.MsgAccessDenied)
	}
	return nil
}

// CanManageBooking allows only the owner of the booked item to change its status.
func CanManageBooking(actorID int64, booking *models.Booking) error {
	if booking.Item == nil || actorID != booking.Item.OwnerID {
		return domain.NewForbiddenError(domain.MsgAccessDenied)
	}
	return nil
}

// CanViewBooking allows the booker and the item owner.
func CanViewBooking(actorID int64, booking *models.Booking) error {
	if actorID == booking.BookerID {
		return nil
	}
	if booking.Item != nil && actorID == booking.Item.OwnerID {
		return nil
	}
	return domain.NewForbiddenError(domain.MsgAccessDenied)
}

func CanUpdateItem(actorID int64, item *models.Item) error {
	if actorID != item.OwnerID {
		return domain.NewForbiddenError(domain.MsgUpdateByOther)
	}
	return nil
}

// CanComment requires a finished booking of the item by the actor. The failure is
// a bad request, not a forbidden one, and reuses the access denied message.
func CanComment(hasFinishedBooking bool) error {
	if !hasFinishedBooking {
		return domain.NewBadRequestError(domain.MsgAccessDenied)
	}
	return nil
}
