package crypto

import (
	"errors"
	"strings"
	"testing"
)

// fastParams keeps Argon2 cheap in tests that do not inspect the defaults.
var fastParams = HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestHashPassword(t *testing.T) {
	password := seededGenerator(5).Generate(Requirements{Lowercase: 8, Capitals: 4, Digits: 2, Symbols: 2})

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("HashPassword() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for the hashed password")
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPasswordWithParams("Ab3$xyzw", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	match, err := VerifyPassword("Ab3$xyzW", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := HashPasswordWithParams("same-password", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}
	hash2, err := HashPasswordWithParams("same-password", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("identical hashes for the same password, salt should differ")
	}
}

func TestParseHashRoundTrip(t *testing.T) {
	hash, err := HashPasswordWithParams("round-trip", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	h, err := ParseHash(hash + "\n")
	if err != nil {
		t.Fatalf("ParseHash() unexpected error: %v", err)
	}
	if h.Params != fastParams {
		t.Errorf("ParseHash() params = %+v, want %+v", h.Params, fastParams)
	}
	if h.String() != hash {
		t.Errorf("String() = %q, want %q", h.String(), hash)
	}
}

func TestParseHashInvalid(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"garbage", "invalid-hash-format", ErrInvalidHashFormat},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5", ErrInvalidHashFormat},
		{"missing leading dollar", "argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5$", ErrInvalidHashFormat},
		{"bad version field", "$argon2id$version$m=1024,t=1,p=1$c2FsdA$a2V5", ErrInvalidHashFormat},
		{"old version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=x$c2FsdA$a2V5", ErrInvalidHashFormat},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5", ErrInvalidHashFormat},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHash(tt.hash); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseHash() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := VerifyPassword("password", tt.hash); err == nil {
				t.Error("VerifyPassword() expected error for invalid hash")
			}
		})
	}
}
