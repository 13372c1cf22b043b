package users

import (
	"context"

	"impulselog/internal/server/models"
)

// Repository persists user identity records. Implementations translate
// driver-level failures into the shared sentinel errors: duplicate
// username/email becomes common.ErrorAlreadyExists, a missing row becomes
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	// ExistsEmail ignores the row with excludeID so a user's own email does
	// not count as a conflict on self-update. Pass 0 to check all rows.
	ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
