package models

type Item struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Available   bool   `json:"available" yaml:"available"`
	OwnerID     int64  `json:"ownerId" yaml:"owner_id"`
	RequestID   *int64 `json:"requestId,omitempty" yaml:"request_id"`

	Owner *UserSummary `json:"owner,omitempty" yaml:"-"`
}

// ItemPatch is a field-wise update of an item. Absent fields keep the stored value.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	OwnerID     *int64  `json:"ownerId"`
}

// Apply merges the present fields into item.
func (p ItemPatch) Apply(item *Item) {
	if p.OwnerID != nil {
		item.OwnerID = *p.OwnerID
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
}

// ItemSummary is the reduced item view embedded into bookings.
type ItemSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// BookingInfo is the booking reference shown as last/next booking of an item.
type BookingInfo struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemInfo is the item read model with derived booking and comment data.
type ItemInfo struct {
	Item
	LastBooking *BookingInfo `json:"lastBooking"`
	NextBooking *BookingInfo `json:"nextBooking"`
	Comments    []Comment    `json:"comments"`
}
