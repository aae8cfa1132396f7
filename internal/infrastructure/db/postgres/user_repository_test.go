package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/cvds/identity-service/internal/core/domain"
)

func newMockRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return NewUserRepository(mock), mock
}

func userRows(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(u.ID, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt)
}

func sampleUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           "u1",
		Username:     "admin",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	repo, mock := newMockRepo(t)
	want := sampleUser()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(userRows(want))

	got, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if got.ID != want.ID || got.Username != want.Username || got.Role != want.Role {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PasswordHash != want.PasswordHash {
		t.Fatalf("repository must return the stored hash to the service layer")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "updated_at"}))

	if _, err := repo.FindByUsername(context.Background(), "ghost"); !errors.Is(err, domain.ErrUsernameNotFound) {
		t.Fatalf("expected ErrUsernameNotFound, got %v", err)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "updated_at"}))

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt).
		WillReturnRows(userRows(user))

	created, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != user.Username {
		t.Fatalf("unexpected created user: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	if _, err := repo.Create(context.Background(), user); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_Update_Partial(t *testing.T) {
	repo, mock := newMockRepo(t)
	stored := sampleUser()

	username := "admin2"
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("u1", &username, (*string)(nil), (*string)(nil), pgxmock.AnyArg()).
		WillReturnRows(userRows(stored))

	if _, err := repo.Update(context.Background(), domain.UserUpdate{ID: "u1", Username: &username}, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	username := "nobody"
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("missing", &username, (*string)(nil), (*string)(nil), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "updated_at"}))

	if _, err := repo.Update(context.Background(), domain.UserUpdate{ID: "missing", Username: &username}, nil); !errors.Is(err, domain.ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	stored := sampleUser()

	mock.ExpectQuery(`DELETE FROM users WHERE id = \$1 RETURNING`).
		WithArgs("u1").
		WillReturnRows(userRows(stored))

	deleted, err := repo.Delete(context.Background(), "u1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != "u1" {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`DELETE FROM users WHERE id = \$1 RETURNING`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "updated_at"}))

	if _, err := repo.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}
}
