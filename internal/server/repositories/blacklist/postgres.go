package blacklist

import (
	"context"
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

func (r *PostgresRepository) Insert(ctx context.Context, token string) (*models.RevokedToken, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is empty", common.ErrInvalidArgument)
	}

	query :=
		`INSERT INTO blacklisted_token (token)
		 VALUES ($1)
		 RETURNING id, created_on
		 `

	record := &models.RevokedToken{Token: token}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&record.ID, &record.CreatedOn)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, token string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM blacklisted_token WHERE token = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, token).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}
