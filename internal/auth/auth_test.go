package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

func newTestService(t *testing.T) (*AuthService, *Issuer) {
	t.Helper()
	users := repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(context.Background(), users, time.Now()); err != nil {
		t.Fatalf("seeding users failed: %v", err)
	}
	issuer := NewIssuer("test-secret", time.Hour)
	return NewAuthService(users, issuer, NewMemoryRevocationStore()), issuer
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	user := models.User{ID: "1", Email: "a@b.c", Role: models.RoleAdmin}

	token, issued, err := issuer.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "a@b.c" || claims.Role != models.RoleAdmin || claims.ID != issued.ID {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestIssuer_Rejects(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	token, _, _ := issuer.GenerateToken(models.User{ID: "1"})

	if _, err := NewIssuer("other", time.Minute).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected wrong secret to fail, got %v", err)
	}

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := issuer.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to fail, got %v", err)
	}

	if _, err := issuer.ParseToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected garbage to fail, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Login(ctx, "admin@warehouse.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != models.RoleAdmin || token == "" {
		t.Errorf("unexpected login result: %+v %q", user, token)
	}

	if _, _, err := svc.Login(ctx, "admin@warehouse.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@warehouse.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LogoutAndRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, token, _ := svc.Login(ctx, "demo@warehouse.com", "demo")
	claims, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh, err := svc.Refresh(ctx, claims)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected old token to be revoked, got %v", err)
	}

	freshClaims, err := svc.Authenticate(ctx, fresh)
	if err != nil {
		t.Fatalf("expected refreshed token to work, got %v", err)
	}
	if err := svc.Logout(ctx, freshClaims); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, fresh); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected logged out token to be revoked, got %v", err)
	}
}

func TestMemoryRevocationStore_Expires(t *testing.T) {
	s := NewMemoryRevocationStore()
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	_ = s.Revoke(ctx, "a", now.Add(time.Minute))
	if ok, _ := s.IsRevoked(ctx, "a"); !ok {
		t.Error("expected token to be revoked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := s.IsRevoked(ctx, "a"); ok {
		t.Error("expected revocation to lapse after expiry")
	}
}

func TestActorFromContext(t *testing.T) {
	if got := ActorFromContext(context.Background()); got != "anonymous" {
		t.Errorf("expected anonymous, got %q", got)
	}
	ctx := WithClaims(context.Background(), &Claims{Email: "demo@warehouse.com"})
	if got := ActorFromContext(ctx); got != "demo@warehouse.com" {
		t.Errorf("expected email, got %q", got)
	}
}
