package domain

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindBadRequest Kind = "BAD_REQUEST"
	KindForbidden  Kind = "FORBIDDEN"
	KindConflict   Kind = "CONFLICT"
)

const (
	MsgUserNotFound       = "The user not found"
	MsgItemNotFound       = "The item not found"
	MsgBookingNotFound    = "The booking not found"
	MsgRequestNotFound    = "The request not found"
	MsgAccessDenied       = "Access denied"
	MsgUpdateByOther      = "Update with other user"
	MsgApprovedAlreadySet = "The status 'APPROVED' is already set"
	MsgItemNotAvailable   = "The item not available"
	MsgStartAfterEnd      = "The start date should be earlier than the end date"
	MsgInvalidPage        = "Invalid pagination parameters"
)

// Error is a domain failure with a kind the adapters map onto their status codes.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewBadRequestError(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewUnknownStateError(state string) error {
	return NewBadRequestError(fmt.Sprintf("Unknown state: %s", state))
}

func NewEmailConflictError(email string) error {
	return NewConflictError(fmt.Sprintf("User with email: %s already exists", email))
}

// KindOf returns the kind of the first domain error in err's chain, or "".
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// MessageOf returns the domain message of err, or err.Error() for other errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
