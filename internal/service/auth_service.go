package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/bookshop/internal/model"
	"github.com/iliyamo/bookshop/internal/repository"
	"github.com/iliyamo/bookshop/internal/utils"
)

// Messages returned to clients by AuthService.
const (
	MsgRegisterFieldsRequired = "Username, password, and email are required"
	MsgUserExists             = "User already exists"
	MsgPasswordTooLong        = "Password must be at most 72 bytes"
	MsgLoginFieldsRequired    = "Username and password are required"
	MsgInvalidCredentials     = "Invalid credentials"
	MsgTokenRequired          = "Access token required"
	MsgInvalidToken           = "Invalid or expired token"
)

// AuthConfig carries the signing and hashing parameters for AuthService.
type AuthConfig struct {
	Secret     string        // HMAC secret shared by every token of the process
	TokenTTL   time.Duration // lifetime of issued tokens
	BcryptCost int           // bcrypt work factor
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.UserPublic
}

// AuthService registers users, checks credentials and issues/verifies
// access tokens.
type AuthService struct {
	users repository.UserRepository
	cfg   AuthConfig
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, cfg: cfg, now: time.Now}
}

// Register creates an account and returns its public fields.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.UserPublic, error) {
	if username == "" || email == "" || password == "" {
		return model.UserPublic{}, newError(ErrValidation, MsgRegisterFieldsRequired)
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return model.UserPublic{}, newError(ErrConflict, MsgUserExists)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserPublic{}, err
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return model.UserPublic{}, newError(ErrValidation, MsgPasswordTooLong)
		}
		return model.UserPublic{}, err
	}
	u, err := s.users.Insert(ctx, model.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return model.UserPublic{}, newError(ErrConflict, MsgUserExists)
		}
		return model.UserPublic{}, err
	}
	return u.Public(), nil
}

// Login checks username/password and issues an access token. Unknown
// users and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, newError(ErrValidation, MsgLoginFieldsRequired)
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, err
		}
		// Spend the same bcrypt time as a real check.
		utils.VerifyPassword(s.dummy(), password)
		return LoginResult{}, newError(ErrAuth, MsgInvalidCredentials)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, newError(ErrAuth, MsgInvalidCredentials)
	}
	tok, err := utils.NewAccessToken(s.cfg.Secret, u.ID, u.Username, s.cfg.TokenTTL, s.now())
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok.Token, ExpiresAt: tok.Exp, User: u.Public()}, nil
}

// Verify decodes a bearer token into the caller's identity.
func (s *AuthService) Verify(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, newError(ErrAuth, MsgTokenRequired)
	}
	claims, err := utils.ParseAccessToken(s.cfg.Secret, token)
	if err != nil {
		return model.Identity{}, newError(ErrAuth, MsgInvalidToken)
	}
	return model.Identity{ID: claims.ID, Username: claims.Username}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("bookshop-dummy-password", s.cfg.BcryptCost)
	})
	return s.dummyHash
}
