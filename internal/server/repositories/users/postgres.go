package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/dbx"
	"github.com/campkeeper/campkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_name, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_on, modified_on
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash).Scan(&user.ID, &user.CreatedOn, &user.ModifiedOn)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, role := range user.Roles {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO user_role (user_id, role_name) VALUES ($1, $2)`,
			user.ID, role)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return user, nil
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is empty", common.ErrInvalidArgument)
	}

	query :=
		`SELECT id, user_name, password_hash, created_on, modified_on FROM users
		 WHERE user_name = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedOn, &user.ModifiedOn)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, user_name, password_hash, created_on, modified_on FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedOn, &user.ModifiedOn)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, user_name, password_hash, created_on, modified_on FROM users
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedOn, &user.ModifiedOn); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, user := range users {
		if err := r.loadRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (r *PostgresRepository) AddHistoryEntry(ctx context.Context, entry *models.UserHistoryEntry) error {
	query :=
		`INSERT INTO user_history (user_id, editor_name, message)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.EditorName, entry.Message).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) loadRoles(ctx context.Context, user *models.User) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role_name FROM user_role WHERE user_id = $1 ORDER BY role_name`,
		user.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
