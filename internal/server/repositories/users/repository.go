// Package users implements the user directory: lookups by name and id,
// listing, creation with role grants, and audit history entries.
package users

import (
	"context"

	"github.com/campkeeper/campkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the user together with its role grants and returns the
	// stored record with the assigned id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUserName performs a case-sensitive exact match on the unique
	// user_name column. Absence is common.ErrNotFound; an empty userName is
	// common.ErrInvalidArgument.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)

	List(ctx context.Context) ([]*models.User, error)

	// AddHistoryEntry appends an audit record for the given user.
	AddHistoryEntry(ctx context.Context, entry *models.UserHistoryEntry) error
}
