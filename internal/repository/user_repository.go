package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopping/internal/db"
	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{q: db.New(pool)}
}

func NewUserWithTx(tx pgx.Tx) port.UserRepository {
	return &userRepository{q: db.New(tx)}
}

func (r *userRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUser(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user[%d]: %w", id, domain.ErrUserNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUser: %w", err)
	}

	return domain.User(row), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrUserNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return domain.User(row), nil
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (int64, error) {
	if user.Email == "" {
		return 0, fmt.Errorf("email is empty")
	}
	if user.PasswordHash == "" {
		return 0, fmt.Errorf("password hash is empty")
	}

	id, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	})
	if isUniqueViolation(err, usersEmailKey) {
		return 0, fmt.Errorf("user[%s]: %w", user.Email, domain.ErrDuplicateEmail)
	}
	if err != nil {
		return 0, fmt.Errorf("q.CreateUser: %w", err)
	}

	return id, nil
}
