package repomanager

import (
	"context"
	"database/sql"

	"github.com/campkeeper/campkeeper/internal/dbx"
	"github.com/campkeeper/campkeeper/internal/server/repositories/blacklist"
	"github.com/campkeeper/campkeeper/internal/server/repositories/campaigns"
	"github.com/campkeeper/campkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// run a unit of work against either the pooled connection or an open
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Blacklist(db dbx.DBTX) blacklist.Repository
	Campaigns(db dbx.DBTX) campaigns.Repository
}
