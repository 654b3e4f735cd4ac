package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	// StatusCanceled is a valid stored value that no operation produces yet.
	StatusCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64         `json:"id"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`

	Booker *UserSummary `json:"booker,omitempty"`
	Item   *ItemSummary `json:"item,omitempty"`
}

// BookingRequest is the input of a booking creation.
type BookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// BookingState is a query-time filter over bookings. It is never persisted.
type BookingState int

const (
	StateAll BookingState = iota
	StateApproved
	StateWaiting
	StateRejected
	StateFuture
	StatePast
	StateCurrent
)

var bookingStateNames = map[BookingState]string{
	StateAll:      "ALL",
	StateApproved: "APPROVED",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
	StateFuture:   "FUTURE",
	StatePast:     "PAST",
	StateCurrent:  "CURRENT",
}

func (s BookingState) String() string {
	if name, ok := bookingStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BookingState(%d)", int(s))
}

// ParseBookingState matches raw against the state names exactly (case-sensitive).
func ParseBookingState(raw string) (BookingState, bool) {
	for state, name := range bookingStateNames {
		if name == raw {
			return state, true
		}
	}
	return 0, false
}

// BookingParty selects which side of a booking the actor is on in a listing.
type BookingParty int

const (
	PartyBooker BookingParty = iota
	PartyOwner
)

// BookingQuery is a store-level listing. Nil bounds are not applied.
// All results are ordered by start descending.
type BookingQuery struct {
	Party       BookingParty
	ActorID     int64
	Status      *BookingStatus
	StartAfter  *time.Time
	StartBefore *time.Time
	EndAfter    *time.Time
	EndBefore   *time.Time
	Page        Page
}
