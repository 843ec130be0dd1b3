// Package config loads passgen settings from the environment and an optional
// YAML profile of default password requirements.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrDevSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

// Profile is the set of requirements used when the caller gives none.
type Profile struct {
	Length   int  `yaml:"length"`
	Capitals int  `yaml:"capitals"`
	Digits   int  `yaml:"digits"`
	Symbols  int  `yaml:"symbols"`
	Copy     bool `yaml:"copy"`
}

// Requirements resolves the profile through the core resolver.
func (p Profile) Requirements() (crypto.Requirements, error) {
	return crypto.ResolveRequirements(p.Length, p.Capitals, p.Digits, p.Symbols)
}

// DefaultProfile returns 16 characters with two capitals, two digits and two symbols.
func DefaultProfile() Profile {
	return Profile{
		Length:   16,
		Capitals: 2,
		Digits:   2,
		Symbols:  2,
	}
}

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxLength      int
	MaxCount       int
	ProfilePath    string
	Profile        Profile
}

// Load reads the environment and, when PASSGEN_PROFILE is set, the profile file.
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ProfilePath: getEnv("PASSGEN_PROFILE", ""),
		Profile:     DefaultProfile(),
	}

	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}
	if cfg.MaxLength, err = getInt("MAX_LENGTH", 1024); err != nil {
		return Config{}, err
	}
	if cfg.MaxCount, err = getInt("MAX_COUNT", 100); err != nil {
		return Config{}, err
	}

	if cfg.ProfilePath != "" {
		if cfg.Profile, err = LoadProfile(cfg.ProfilePath); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// LoadProfile reads a YAML profile. Fields missing from the file keep their defaults.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return p, nil
}

// Validate checks the settings that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		return ErrDevSecretInProduction
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.MaxLength <= 0 || c.MaxCount <= 0 {
		return errors.New("MAX_LENGTH and MAX_COUNT must be positive")
	}
	if _, err := c.Profile.Requirements(); err != nil {
		return fmt.Errorf("default profile: %w", err)
	}
	if c.Profile.Length > c.MaxLength {
		return fmt.Errorf("default profile length %d exceeds MAX_LENGTH %d", c.Profile.Length, c.MaxLength)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
