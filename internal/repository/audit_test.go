package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vaultpass/passgen-go/internal/model"
)

func TestNewAuditRepository(t *testing.T) {
	repo := NewAuditRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil AuditRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestAuditRepositoryWithoutDatabase(t *testing.T) {
	repo := NewAuditRepository(nil)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("EnsureSchema() error = %v, want %v", err, ErrNoDatabase)
	}

	event := &model.GenerationEvent{Client: "cli", Length: 12}
	if err := repo.Insert(ctx, event); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Insert() error = %v, want %v", err, ErrNoDatabase)
	}
	if event.ID != "" {
		t.Errorf("Insert() should not touch the event without a database, got ID %q", event.ID)
	}

	if _, err := repo.ListRecent(ctx, "cli", 10); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("ListRecent() error = %v, want %v", err, ErrNoDatabase)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, 20},
		{0, 20},
		{1, 1},
		{50, 50},
		{MaxHistoryLimit, MaxHistoryLimit},
		{MaxHistoryLimit + 1, MaxHistoryLimit},
	}

	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewDBInvalidDSN(t *testing.T) {
	if _, err := NewDB(context.Background(), "not a dsn"); err == nil {
		t.Error("NewDB() expected error for malformed DSN")
	}
}
