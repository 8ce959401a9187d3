// Package service contains application services for authentication and tasks.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avbelov/taskboard/internal/crypto"
	"github.com/avbelov/taskboard/internal/errs"
	"github.com/avbelov/taskboard/internal/limiter"
	"github.com/avbelov/taskboard/internal/model"
	"github.com/avbelov/taskboard/internal/repository"
	"github.com/avbelov/taskboard/internal/token"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new user with a hashed password and returns an issued token.
	Register(ctx context.Context, username, email, password string) (string, *model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (string, *model.User, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	tokens   *token.Service
	tokenTTL time.Duration
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, tokenTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, tokenTTL: tokenTTL, lim: lim}
}

// Register creates a new user record and issues a token for it.
// A duplicate username or email surfaces as errs.ErrAlreadyExists.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username, email and password are required", errs.ErrValidation)
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return "", nil, err
	}
	digest, err := crypto.HashPassword([]byte(password))
	if err != nil {
		return "", nil, err
	}

	u := &model.User{
		ID:       uid,
		Username: username,
		Email:    email,
		PwdHash:  digest,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", nil, err
	}

	signed, _, err := s.tokens.Issue(u.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip). Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}

	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", nil, err
	}
	if !allowed {
		return "", nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	ok := false
	if err == nil {
		// a malformed stored digest is masked the same as a mismatch
		ok, _ = crypto.VerifyPassword([]byte(password), u.PwdHash)
	}
	if !ok {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", nil, errs.ErrRateLimited
		}
		return "", nil, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	signed, _, err := s.tokens.Issue(u.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}
