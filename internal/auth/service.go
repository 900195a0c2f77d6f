package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthService struct {
	users   repo.UserRepository
	issuer  *Issuer
	revoked RevocationStore
}

func NewAuthService(users repo.UserRepository, issuer *Issuer, revoked RevocationStore) *AuthService {
	return &AuthService{users: users, issuer: issuer, revoked: revoked}
}

// Login checks the credentials and issues a session token.
func (a *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, _, err := a.issuer.GenerateToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Authenticate parses a bearer token and rejects revoked ones.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.issuer.ParseToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (a *AuthService) Logout(ctx context.Context, claims *Claims) error {
	return a.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Refresh issues a new token for the holder of claims and revokes the old one.
func (a *AuthService) Refresh(ctx context.Context, claims *Claims) (string, error) {
	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	token, _, err := a.issuer.GenerateToken(user)
	if err != nil {
		return "", err
	}
	if err := a.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthService) Me(ctx context.Context, claims *Claims) (models.User, error) {
	return a.users.GetByID(ctx, claims.UserID)
}
