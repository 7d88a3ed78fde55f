package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows(id int64, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_name", "password_hash", "created_on", "modified_on"}).
		AddRow(id, name, "hash", now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "modified_on"}).AddRow(int64(42), now, now))
	mock.ExpectExec(`INSERT\s+INTO\s+user_role`).
		WithArgs(int64(42), "role_show_users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	u := &models.User{UserName: "alice", PasswordHash: "hash", Roles: []string{"role_show_users"}}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("alice", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUserName_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_name,\s*password_hash.*FROM\s+users\s+WHERE\s+user_name`).
		WithArgs("alice").
		WillReturnRows(userRows(1, "alice"))
	mock.ExpectQuery(`SELECT\s+role_name\s+FROM\s+user_role`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}).AddRow("role_create_user").AddRow("role_show_users"))

	got, err := repo.GetByUserName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUserName error: %v", err)
	}
	if got.ID != 1 || len(got.Roles) != 2 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUserName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+user_name`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserName(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestGetByUserName_EmptyArgument(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByUserName(context.Background(), "")
	if !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("expected common.ErrInvalidArgument, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM\s+users\s+ORDER\s+BY\s+id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "password_hash", "created_on", "modified_on"}).
			AddRow(int64(1), "alice", "h1", now, now).
			AddRow(int64(2), "bob", "h2", now, now))
	mock.ExpectQuery(`SELECT\s+role_name\s+FROM\s+user_role`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}).AddRow("role_show_users"))
	mock.ExpectQuery(`SELECT\s+role_name\s+FROM\s+user_role`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].UserName != "alice" || got[1].UserName != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestAddHistoryEntry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+user_history`).
		WithArgs(int64(7), "SYSTEM", "User created.").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	entry := &models.UserHistoryEntry{UserID: 7, EditorName: "SYSTEM", Message: "User created."}
	if err := repo.AddHistoryEntry(context.Background(), entry); err != nil {
		t.Fatalf("AddHistoryEntry error: %v", err)
	}
	if entry.ID != 3 {
		t.Fatalf("expected assigned id, got %+v", entry)
	}
}
