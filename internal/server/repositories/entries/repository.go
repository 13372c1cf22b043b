package entries

import (
	"context"

	"impulselog/internal/server/models"
)

// Repository persists impulse entries. Every read, update, and delete takes
// the owner's user id and scopes the statement to it, so an entry belonging
// to another user is indistinguishable from a missing one: both surface as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, entry *models.ImpulseEntry) (*models.ImpulseEntry, error)
	GetByID(ctx context.Context, userID int64, id string) (*models.ImpulseEntry, error)
	// List returns the owner's entries, newest first, optionally bounded by
	// an inclusive creation-time range and an outcome tag.
	List(ctx context.Context, userID int64, filter models.EntryFilter) ([]*models.ImpulseEntry, error)
	Update(ctx context.Context, entry *models.ImpulseEntry) (*models.ImpulseEntry, error)
	Delete(ctx context.Context, userID int64, id string) error
}
