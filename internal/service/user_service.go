package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/shopping/internal/auth"
	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
	"go.uber.org/zap"
)

type TokenIssuer interface {
	Issue(userID int64) (string, error)
	TTL() time.Duration
}

type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

type UserService struct {
	tx     port.Transactor
	tokens TokenIssuer
	logger *zap.Logger
}

func NewUserService(tx port.Transactor, tokens TokenIssuer, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UserService{tx: tx, tokens: tokens, logger: logger}
}

func (s *UserService) Signup(ctx context.Context, email, password string) (int64, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	var id int64

	err = s.tx.ReadWrite(ctx, func(r port.Repositories) error {
		var err error
		id, err = r.Users.Create(ctx, domain.User{Email: email, PasswordHash: hash})
		if err != nil {
			return fmt.Errorf("Users.Create: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("tx.ReadWrite: %w", err)
	}

	s.logger.Info("user signed up", zap.Int64("user_id", id))

	return id, nil
}

// Login verifies the credentials and issues an access token.
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (AccessToken, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return AccessToken{}, domain.ErrInvalidCredentials
	}

	var user domain.User

	err = s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		var err error
		user, err = r.Users.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("Users.GetByEmail: %w", err)
		}
		return nil
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return AccessToken{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return AccessToken{}, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return AccessToken{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AccessToken{}, fmt.Errorf("tokens.Issue: %w", err)
	}

	return AccessToken{Token: token, ExpiresIn: s.tokens.TTL()}, nil
}
