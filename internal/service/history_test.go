package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vaultpass/passgen-go/internal/model"
)

type fakeLister struct {
	events    []model.GenerationEvent
	err       error
	gotClient string
	gotLimit  int
}

func (f *fakeLister) ListRecent(_ context.Context, client string, limit int) ([]model.GenerationEvent, error) {
	f.gotClient, f.gotLimit = client, limit
	return f.events, f.err
}

func TestHistory_Unavailable(t *testing.T) {
	svc := NewHistoryService(nil)

	_, err := svc.List(context.Background(), "cli", 10)
	if err != ErrHistoryUnavailable {
		t.Errorf("expected ErrHistoryUnavailable, got %v", err)
	}
}

func TestHistory_PassesClientAndLimit(t *testing.T) {
	lister := &fakeLister{events: []model.GenerationEvent{{ID: "a", Client: "cli", Length: 16}}}
	svc := NewHistoryService(lister)

	resp, err := svc.List(context.Background(), "cli", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.gotClient != "cli" || lister.gotLimit != 5 {
		t.Errorf("expected client cli and limit 5, got %q and %d", lister.gotClient, lister.gotLimit)
	}
	if len(resp.Events) != 1 || resp.Events[0].ID != "a" {
		t.Errorf("unexpected events %+v", resp.Events)
	}
}

func TestHistory_EmptyIsNotNil(t *testing.T) {
	svc := NewHistoryService(&fakeLister{})

	resp, err := svc.List(context.Background(), "cli", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Events == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
}

func TestHistory_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewHistoryService(&fakeLister{err: boom})

	if _, err := svc.List(context.Background(), "cli", 5); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
