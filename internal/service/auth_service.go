package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"giftfall/api/internal/config"
	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/security"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordMismatch    = errors.New("password and confirmation do not match")
	ErrInvalidPayload      = errors.New("user payload missing id or name")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrEmptyPatch          = errors.New("no fields to update")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePartial(ctx context.Context, id string, patch models.UserPatch, passwordHash []byte) (models.User, error)
}

type TokenStore interface {
	Insert(ctx context.Context, tokenHash []byte, userID string) error
	Find(ctx context.Context, tokenHash []byte) (string, error)
	Delete(ctx context.Context, tokenHash []byte) error
	DeleteByUser(ctx context.Context, userID string) error
}

type AuthService struct {
	users  UserStore
	tokens TokenStore
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
	}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return models.User{}, errors.New("name, email and password required")
	}
	if input.Password != input.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

type AuthResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

// Login verifies the password hash in every case; there is no trusted-email
// shortcut.
func (s *AuthService) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	refreshToken, err := s.issueRefreshToken(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) issueAccessToken(user models.User) (string, error) {
	return security.GenerateAccessToken(s.cfg.Security.JWTAccessSecret, user.ID, user.Name, s.cfg.Security.JWTAccessTTL)
}

func (s *AuthService) issueRefreshToken(ctx context.Context, user models.User) (string, error) {
	if user.ID == "" || user.Name == "" {
		return "", ErrInvalidPayload
	}

	token, tokenHash, err := security.GenerateRefreshToken(s.cfg.Security.JWTRefreshSecret, user.ID, user.Name)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Insert(ctx, tokenHash, user.ID); err != nil {
		return "", err
	}
	return token, nil
}

// Refresh exchanges a live refresh token for a new access token. The token
// must both verify against the refresh secret and still exist in the store.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	tokenHash := security.HashRefreshToken(refreshToken)
	if _, err := s.tokens.Find(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	claims, err := security.ParseRefreshToken(refreshToken, s.cfg.Security.JWTRefreshSecret)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return security.GenerateAccessToken(s.cfg.Security.JWTAccessSecret, claims.UserID, claims.Name, s.cfg.Security.JWTAccessTTL)
}

// Logout revokes the refresh token. Revoking a token that is already gone is
// not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, security.HashRefreshToken(refreshToken))
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch models.UserPatch) (models.User, error) {
	if patch.Empty() {
		return models.User{}, ErrEmptyPatch
	}

	var passwordHash []byte
	if patch.Password != nil {
		var err error
		passwordHash, err = security.HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, err
		}
	}

	user, err := s.users.UpdatePartial(ctx, userID, patch, passwordHash)
	if err != nil {
		return models.User{}, err
	}

	// A password change invalidates every open session.
	if patch.Password != nil {
		if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
