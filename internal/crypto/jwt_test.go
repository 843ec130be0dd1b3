package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestGenerateTokenRequiresClient(t *testing.T) {
	if _, err := GenerateToken("", "test-secret", time.Hour); !errors.Is(err, ErrClientMissing) {
		t.Errorf("GenerateToken() error = %v, want %v", err, ErrClientMissing)
	}
}

func TestValidateTokenValid(t *testing.T) {
	token, err := GenerateToken("ci-runner", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Client != "ci-runner" {
		t.Errorf("ValidateToken() Client = %q, want %q", claims.Client, "ci-runner")
	}
	if claims.Subject != "ci-runner" {
		t.Errorf("ValidateToken() Subject = %q, want %q", claims.Subject, "ci-runner")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	base := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	wrongIssuer := base
	wrongIssuer.Issuer = "vaultpass"

	wrongAudience := base
	wrongAudience.Audience = jwt.ClaimStrings{"wrong-audience"}

	expired := base
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"malformed", "not-a-valid-token", secret},
		{"wrong secret", signClaims(t, Claims{RegisteredClaims: base, Client: "a"}, "other-secret"), secret},
		{"wrong issuer", signClaims(t, Claims{RegisteredClaims: wrongIssuer, Client: "a"}, secret), secret},
		{"wrong audience", signClaims(t, Claims{RegisteredClaims: wrongAudience, Client: "a"}, secret), secret},
		{"expired", signClaims(t, Claims{RegisteredClaims: expired, Client: "a"}, secret), secret},
		{"no client", signClaims(t, Claims{RegisteredClaims: base}, secret), secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}
