package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrLengthTooLong = errors.New("password length exceeds the configured maximum")
	ErrInvalidCount  = errors.New("count must be between 1 and the configured maximum")
)

// IsValidationError reports whether err was caused by the request rather than the server.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrRequirementsOverflow) ||
		errors.Is(err, crypto.ErrNegativeCount) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrInvalidCount)
}

// AuditRecorder stores generation events.
type AuditRecorder interface {
	Insert(ctx context.Context, event *model.GenerationEvent) error
}

// Limits bounds what a single request may ask for.
type Limits struct {
	MaxLength int
	MaxCount  int
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      *crypto.Generator
	defaults config.Profile
	limits   Limits
	recorder AuditRecorder
	metrics  *metrics.Metrics
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(gen *crypto.Generator, defaults config.Profile, limits Limits) *GeneratorService {
	return &GeneratorService{
		gen:      gen,
		defaults: defaults,
		limits:   limits,
	}
}

// WithRecorder makes the service record an audit event for each successful request.
func (s *GeneratorService) WithRecorder(r AuditRecorder) *GeneratorService {
	s.recorder = r
	return s
}

// WithMetrics makes the service report to m.
func (s *GeneratorService) WithMetrics(m *metrics.Metrics) *GeneratorService {
	s.metrics = m
	return s
}

// Resolve turns a request into requirements, applying the default profile and limits.
func (s *GeneratorService) Resolve(req model.GenerateRequest) (crypto.Requirements, error) {
	var length, capitals, digits, symbols int
	if req.Length == nil {
		length = s.defaults.Length
		capitals = intOrDefault(req.Capitals, s.defaults.Capitals)
		digits = intOrDefault(req.Digits, s.defaults.Digits)
		symbols = intOrDefault(req.Symbols, s.defaults.Symbols)
	} else {
		length = *req.Length
		capitals = intOrDefault(req.Capitals, 0)
		digits = intOrDefault(req.Digits, 0)
		symbols = intOrDefault(req.Symbols, 0)
	}

	if s.limits.MaxLength > 0 && length > s.limits.MaxLength {
		return crypto.Requirements{}, fmt.Errorf("%w (%d > %d)", ErrLengthTooLong, length, s.limits.MaxLength)
	}

	return crypto.ResolveRequirements(length, capitals, digits, symbols)
}

// Generate produces one or more passwords for req on behalf of client.
func (s *GeneratorService) Generate(ctx context.Context, client string, req model.GenerateRequest) (model.GenerateResponse, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || (s.limits.MaxCount > 0 && count > s.limits.MaxCount) {
		s.metrics.ObserveRejected("count")
		return model.GenerateResponse{}, ErrInvalidCount
	}

	requirements, err := s.Resolve(req)
	if err != nil {
		s.metrics.ObserveRejected(rejectReason(err))
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Passwords:    make([]string, 0, count),
		Length:       requirements.Length(),
		Requirements: requirements,
	}

	for i := 0; i < count; i++ {
		password := s.gen.Generate(requirements)
		resp.Passwords = append(resp.Passwords, password)

		if req.Hash {
			hash, err := crypto.HashPassword(password)
			if err != nil {
				return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
			}
			resp.Hashes = append(resp.Hashes, hash)
		}
	}

	s.metrics.ObserveGenerated(resp.Length, count)
	s.record(ctx, client, requirements, count, req.Hash)

	return resp, nil
}

// record stores the audit event. A failed write is logged, not returned: the
// passwords are already generated and the caller should still receive them.
func (s *GeneratorService) record(ctx context.Context, client string, req crypto.Requirements, count int, hashed bool) {
	if s.recorder == nil {
		return
	}

	event := &model.GenerationEvent{
		Client:    client,
		Length:    req.Length(),
		Lowercase: req.Lowercase,
		Capitals:  req.Capitals,
		Digits:    req.Digits,
		Symbols:   req.Symbols,
		Count:     count,
		Hashed:    hashed,
	}
	if err := s.recorder.Insert(ctx, event); err != nil {
		slog.Warn("recording generation event failed", "client", client, "error", err)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, crypto.ErrRequirementsOverflow):
		return "overflow"
	case errors.Is(err, crypto.ErrNegativeCount):
		return "negative"
	case errors.Is(err, ErrLengthTooLong):
		return "too_long"
	default:
		return "other"
	}
}

// intOrDefault returns the dereferenced pointer value, or the fallback if nil.
func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
