package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/roles"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*UserService, *authFixture) {
	t.Helper()
	f := newAuthFixture(t, nil)
	svc := NewUserService(f.svc.db, f.svc.repomanager, testLogger())
	return svc, f
}

func TestUserCreate_HashesPassword(t *testing.T) {
	svc, f := newUserFixture(t)
	expectTxCommit(f.mock)

	user, err := svc.Create(context.Background(), "SYSTEM", "alice", "secret", []string{roles.ShowUsers})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash must verify against the password: %v", err)
	}
}

func TestUserCreate_RejectsUnknownRole(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), "SYSTEM", "alice", "secret", []string{"role_rule_the_world"})
	if !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestUserCreate_RejectsEmptyFields(t *testing.T) {
	svc, _ := newUserFixture(t)

	if _, err := svc.Create(context.Background(), "SYSTEM", "", "secret", nil); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("empty user name: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "SYSTEM", "alice", "", nil); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("empty password: expected ErrInvalidArgument, got %v", err)
	}
}

func TestEnsureSuperuser_CreatesOnFirstStartup(t *testing.T) {
	svc, f := newUserFixture(t)
	expectTxCommit(f.mock)

	if err := svc.EnsureSuperuser(context.Background(), "sup3r"); err != nil {
		t.Fatalf("EnsureSuperuser error: %v", err)
	}

	created, ok := f.users.users[common.SuperuserName]
	if !ok {
		t.Fatalf("superuser was not created")
	}
	if len(created.Roles) != len(roles.All()) {
		t.Fatalf("superuser must carry every role, got %v", created.Roles)
	}
}

func TestEnsureSuperuser_NoopWhenPresent(t *testing.T) {
	svc, f := newUserFixture(t)
	f.addUser(t, common.SuperuserName, "already-there", roles.All()...)

	// no transaction expected: lookup only
	if err := svc.EnsureSuperuser(context.Background(), ""); err != nil {
		t.Fatalf("EnsureSuperuser error: %v", err)
	}
}

func TestEnsureSuperuser_MissingPassword(t *testing.T) {
	svc, _ := newUserFixture(t)

	err := svc.EnsureSuperuser(context.Background(), "")
	if !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
