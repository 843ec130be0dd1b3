package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashParams configures Argon2id.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns the parameters used for hashes emitted by --hash.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// EncodedHash is a decoded Argon2id PHC string.
type EncodedHash struct {
	Params HashParams
	Salt   []byte
	Key    []byte
}

// String encodes h as $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
func (h EncodedHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.Params.Memory,
		h.Params.Iterations,
		h.Params.Parallelism,
		base64.RawStdEncoding.EncodeToString(h.Salt),
		base64.RawStdEncoding.EncodeToString(h.Key),
	)
}

// HashPassword hashes a generated password with DefaultHashParams.
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultHashParams())
}

// HashPasswordWithParams hashes password with a fresh random salt and returns a PHC string.
func HashPasswordWithParams(password string, params HashParams) (string, error) {
	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	h := EncodedHash{
		Params: params,
		Salt:   salt,
		Key:    argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength),
	}
	return h.String(), nil
}

// VerifyPassword reports whether password matches encodedHash, comparing in constant time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	h, err := ParseHash(encodedHash)
	if err != nil {
		return false, err
	}

	p := h.Params
	candidate := argon2.IDKey([]byte(password), h.Salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return subtle.ConstantTimeCompare(h.Key, candidate) == 1, nil
}

// ParseHash decodes a PHC-formatted Argon2id hash.
func ParseHash(encodedHash string) (EncodedHash, error) {
	parts := strings.Split(strings.TrimSpace(encodedHash), "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return EncodedHash{}, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return EncodedHash{}, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return EncodedHash{}, ErrIncompatibleVersion
	}

	var h EncodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.Params.Memory, &h.Params.Iterations, &h.Params.Parallelism); err != nil {
		return EncodedHash{}, ErrInvalidHashFormat
	}

	var err error
	if h.Salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return EncodedHash{}, ErrInvalidHashFormat
	}
	if h.Key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.Key) == 0 {
		return EncodedHash{}, ErrInvalidHashFormat
	}
	h.Params.SaltLength = uint32(len(h.Salt))
	h.Params.KeyLength = uint32(len(h.Key))

	return h, nil
}
