package models

import "time"

// Request is a user's call for an item that nobody has listed yet.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
