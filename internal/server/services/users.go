package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/dbx"
	"github.com/campkeeper/campkeeper/internal/logging"
	"github.com/campkeeper/campkeeper/internal/server/models"
	"github.com/campkeeper/campkeeper/internal/server/repositories/repomanager"
	"github.com/campkeeper/campkeeper/internal/server/roles"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles user administration: creation with role grants and
// listing. Every mutation records a history entry naming the editor.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "user_service"),
	}
}

// Create hashes the password, stores the user with the given role grants and
// appends an audit entry attributed to editorName. Unknown role names are
// rejected before anything is written.
func (s *UserService) Create(ctx context.Context, editorName, userName, password string, roleNames []string) (*models.User, error) {
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is empty", common.ErrInvalidArgument)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is empty", common.ErrInvalidArgument)
	}
	for _, r := range roleNames {
		if !roles.IsValid(r) {
			return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidArgument, r)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	user := &models.User{
		UserName:     userName,
		PasswordHash: string(hash),
		Roles:        roleNames,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err = repo.Create(ctx, user)
		if err != nil {
			s.logger.Error(ctx, "user creation failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		entry := &models.UserHistoryEntry{
			UserID:     user.ID,
			EditorName: editorName,
			Message:    "User created.",
		}
		if err := repo.AddHistoryEntry(ctx, entry); err != nil {
			s.logger.Error(ctx, "user history write failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "user_name", userName, "editor", editorName)
	return user, nil
}

// List returns every known user.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "user listing failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return users, nil
}

// GetByUserName resolves a single user; absence is common.ErrNotFound.
func (s *UserService) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidArgument) {
			return nil, err
		}
		s.logger.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return user, nil
}
