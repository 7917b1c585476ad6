package jwt

import (
	"errors"
	"testing"
	"time"

	"ats/internal/domain/application"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "bot@ats.local", application.RoleBot)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	c, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != id || c.Role != application.RoleBot || c.Email != "bot@ats.local" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(uuid.New(), "", application.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_RejectsWrongSecretAndRole(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	other := NewHMACService("other", time.Minute)

	tok, err := other.GenerateAccessToken(uuid.New(), "", application.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	if _, err := svc.GenerateAccessToken(uuid.New(), "", application.Role(0)); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown role, got %v", err)
	}

	// A token minted elsewhere with a role outside the closed set is refused.
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"user_id":    uuid.NewString(),
		"role":       "superuser",
		"token_type": TokenTypeAccess,
		"exp":        time.Now().Add(time.Minute).Unix(),
	})
	signed, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
