// Package blacklist implements the append-only token denylist. Rows are
// written on logout and consulted on every authenticated request; the
// repository exposes no update or delete operations by design.
package blacklist

import (
	"context"

	"github.com/campkeeper/campkeeper/internal/server/models"
)

type Repository interface {
	// Insert persists the token string and returns the stored record with
	// its surrogate id. An empty token is common.ErrInvalidArgument.
	// Duplicate inserts are allowed; denylist semantics make the extra row
	// harmless.
	Insert(ctx context.Context, token string) (*models.RevokedToken, error)

	// Exists reports whether a record with this exact token string is
	// present. Point lookup on an indexed column.
	Exists(ctx context.Context, token string) (bool, error)
}
