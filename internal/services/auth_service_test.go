package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func newTestAuth(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()

	auth, err := NewAuthService(zerolog.Nop(), "Dev@FocusFlow.local", "secret-password", "focusflow", []byte("signing-key"), ttl)
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}
	return auth
}

func TestLogin(t *testing.T) {
	t.Parallel()
	auth := newTestAuth(t, time.Minute)

	result, err := auth.Login(context.Background(), LoginParams{Email: " dev@focusflow.local", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.ID != DevUserID {
		t.Errorf("user id = %q", result.User.ID)
	}
	if !result.AccessTokenExpiresAt.After(time.Now()) {
		t.Errorf("token already expired at %v", result.AccessTokenExpiresAt)
	}

	claims, err := auth.ParseJWTToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.Subject != DevUserID || claims.Issuer != "focusflow" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()
	auth := newTestAuth(t, time.Minute)

	tests := []struct {
		name   string
		params LoginParams
		want   error
	}{
		{"unknown email", LoginParams{Email: "other@focusflow.local", Password: "secret-password"}, ErrUserNotFound},
		{"wrong password", LoginParams{Email: "dev@focusflow.local", Password: "nope"}, ErrUserPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(context.Background(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseJWTTokenRejects(t *testing.T) {
	t.Parallel()

	expired := newTestAuth(t, -time.Minute)
	result, err := expired.Login(context.Background(), LoginParams{Email: "dev@focusflow.local", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := expired.ParseJWTToken(result.AccessToken); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expired token error = %v, want jwt.ErrTokenExpired", err)
	}

	other, err := NewAuthService(zerolog.Nop(), "dev@focusflow.local", "secret-password", "focusflow", []byte("other-key"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := other.Login(context.Background(), LoginParams{Email: "dev@focusflow.local", Password: "secret-password"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newTestAuth(t, time.Minute).ParseJWTToken(fresh.AccessToken); err == nil {
		t.Error("token signed with a different key was accepted")
	}

	if _, err := expired.ParseJWTToken("not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
