package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingState(t *testing.T) {
	for state, name := range bookingStateNames {
		got, ok := ParseBookingState(name)
		assert.True(t, ok, name)
		assert.Equal(t, state, got)
		assert.Equal(t, name, state.String())
	}

	_, ok := ParseBookingState("all")
	assert.False(t, ok)
	_, ok = ParseBookingState("UNKNOWN")
	assert.False(t, ok)
	_, ok = ParseBookingState("CANCELED")
	assert.False(t, ok)
}

func TestItemPatchApply(t *testing.T) {
	item := Item{ID: 1, Name: "drill", Description: "hammer drill", Available: true, OwnerID: 1}

	name := "saw"
	ItemPatch{Name: &name}.Apply(&item)
	assert.Equal(t, "saw", item.Name)
	assert.Equal(t, "hammer drill", item.Description)
	assert.True(t, item.Available)

	available := false
	owner := int64(7)
	ItemPatch{Available: &available, OwnerID: &owner}.Apply(&item)
	assert.False(t, item.Available)
	assert.Equal(t, int64(7), item.OwnerID)
	assert.Equal(t, "saw", item.Name)
}

func TestUserPatchApply(t *testing.T) {
	u := User{ID: 1, Name: "ann", Email: "ann@example.com"}
	email := "ann@mail.org"
	UserPatch{Email: &email}.Apply(&u)
	assert.Equal(t, "ann", u.Name)
	assert.Equal(t, "ann@mail.org", u.Email)
}

func TestPageValid(t *testing.T) {
	assert.True(t, Page{Offset: 0, Limit: 10}.Valid())
	assert.False(t, Page{Offset: -1, Limit: 10}.Valid())
	assert.False(t, Page{Offset: 0, Limit: 0}.Valid())
}
