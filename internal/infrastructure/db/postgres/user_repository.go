package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cvds/identity-service/internal/core/domain"
)

const userColumns = "id, username, password_hash, role, created_at, updated_at"

// pool is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository persists user records in the users table. Username
// uniqueness is enforced by the table's unique constraint; violations map to
// domain.ErrUserExists.
type UserRepository struct {
	pool pool
}

func NewUserRepository(pool pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row, "find user by id", domain.ErrUserIDNotFound)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return scanUser(row, "find user by username", domain.ErrUsernameNotFound)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.ID, user.Username, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	)
	return scanUser(row, "insert user", domain.ErrUserIDNotFound)
}

// Update overwrites only the provided fields; nil inputs keep the stored
// value via COALESCE. The password arrives pre-hashed from the service.
func (r *UserRepository) Update(ctx context.Context, update domain.UserUpdate, passwordHash *string) (*domain.User, error) {
	var role *string
	if update.Role != nil {
		s := string(*update.Role)
		role = &s
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			username      = COALESCE($2, username),
			password_hash = COALESCE($3, password_hash),
			role          = COALESCE($4, role),
			updated_at    = $5
		WHERE id = $1
		RETURNING `+userColumns,
		update.ID, update.Username, passwordHash, role, time.Now().UTC(),
	)
	return scanUser(row, "update user", domain.ErrUserIDNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		"DELETE FROM users WHERE id = $1 RETURNING "+userColumns, id)
	return scanUser(row, "delete user", domain.ErrUserIDNotFound)
}

func scanUser(row pgx.Row, op string, notFound error) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
