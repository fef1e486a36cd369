package service

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
	tokenTTL time.Duration
}

// NewAuthService returns a new AuthService. A zero tokenTTL issues tokens
// without an expiry.
func NewAuthService(userRepo repository.UserRepository, codec *token.Codec, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

// Login verifies the username and password and returns a signed token.
// Unknown users and wrong passwords produce the same error so callers learn
// nothing about which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.NewInvalidCredentialsError()
	}

	signed, err := s.codec.Issue(user.ID, user.Username, s.tokenTTL)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}
