package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID int, secret string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestValidateAccessToken(t *testing.T) {
	signed := signToken(t, 42, testSecret, time.Now().Add(time.Hour))

	claims, err := ValidateAccessToken(signed, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	signed := signToken(t, 42, testSecret, time.Now().Add(-time.Hour))

	_, err := ValidateAccessToken(signed, testSecret)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Errorf("expected expired token error, got %v", err)
	}
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	signed := signToken(t, 42, "other-secret", time.Now().Add(time.Hour))

	_, err := ValidateAccessToken(signed, testSecret)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected invalid token error, got %v", err)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty", header: "", wantErr: true},
		{name: "no prefix", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
