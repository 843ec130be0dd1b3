package service

import (
	"context"
	"errors"

	"github.com/vaultpass/passgen-go/internal/model"
)

var ErrHistoryUnavailable = errors.New("generation history is not available")

// EventLister reads recorded generation events.
type EventLister interface {
	ListRecent(ctx context.Context, client string, limit int) ([]model.GenerationEvent, error)
}

// HistoryService exposes a client's generation history.
type HistoryService struct {
	repo EventLister
}

// NewHistoryService creates a new HistoryService. A nil repo makes every call
// return ErrHistoryUnavailable.
func NewHistoryService(repo EventLister) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns the most recent events recorded for client.
func (s *HistoryService) List(ctx context.Context, client string, limit int) (model.HistoryResponse, error) {
	if s.repo == nil {
		return model.HistoryResponse{}, ErrHistoryUnavailable
	}

	events, err := s.repo.ListRecent(ctx, client, limit)
	if err != nil {
		return model.HistoryResponse{}, err
	}
	if events == nil {
		events = []model.GenerationEvent{}
	}

	return model.HistoryResponse{Events: events}, nil
}
