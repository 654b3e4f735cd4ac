package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

// ActorResolver turns a caller id into an existing user.
type ActorResolver interface {
	Resolve(ctx context.Context, id int64) (*models.User, error)
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// RealClock returns the wall clock in UTC.
func RealClock() domain.Clock {
	return realClock{}
}

// notFound maps the store's missing-row error to a domain NotFound with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, database.ErrNotFound) {
		return domain.NewNotFoundError(msg)
	}
	return err
}

func checkPage(page models.Page) error {
	if !page.Valid() {
		return domain.NewBadRequestError(domain.MsgInvalidPage)
	}
	return nil
}

// storePrecision drops what the store cannot keep, so comparisons agree with stored rows.
func storePrecision(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
