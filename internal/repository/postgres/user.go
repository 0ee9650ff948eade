package postgres

import (
	"context"
	"fmt"

	"order-service/internal/domain/user"
	apperrors "order-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Email, input.PasswordHash).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error {
	query := "UPDATE users SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Email != nil {
		argCount++
		query += fmt.Sprintf(", email = $%d", argCount)
		args = append(args, *input.Email)
	}

	if input.PasswordHash != nil {
		argCount++
		query += fmt.Sprintf(", password_hash = $%d", argCount)
		args = append(args, *input.PasswordHash)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email already exists")
		}
		return errFailedUpdateUser(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM users WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteUser(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}
