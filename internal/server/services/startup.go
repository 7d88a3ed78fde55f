package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/roles"
)

// EnsureSuperuser creates the superuser account with every role on first
// startup. Subsequent startups find the account and do nothing. A missing
// superuser password is fatal only when the account still has to be created.
func (s *UserService) EnsureSuperuser(ctx context.Context, superuserPassword string) error {
	_, err := s.GetByUserName(ctx, common.SuperuserName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	if superuserPassword == "" {
		return fmt.Errorf("%w: superuser password is not set", common.ErrConfiguration)
	}

	_, err = s.Create(ctx, common.SystemEditorName, common.SuperuserName, superuserPassword, roles.All())
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "superuser created")
	return nil
}
