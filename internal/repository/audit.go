package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen-go/internal/model"
)

const MaxHistoryLimit = 100

var ErrNoDatabase = errors.New("audit log database is not configured")

const createAuditTable = `
	CREATE TABLE IF NOT EXISTS generation_events (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		client     VARCHAR(255) NOT NULL,
		length     INT          NOT NULL,
		lowercase  INT          NOT NULL,
		capitals   INT          NOT NULL,
		digits     INT          NOT NULL,
		symbols    INT          NOT NULL,
		count      INT          NOT NULL,
		hashed     BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at DATETIME(6)  NOT NULL,
		INDEX idx_generation_events_client (client, created_at)
	)`

// AuditRepository persists generation events.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the generation_events table if it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	_, err := r.db.ExecContext(ctx, createAuditTable)
	return err
}

// Insert stores event, assigning an ID and timestamp when they are unset.
func (r *AuditRepository) Insert(ctx context.Context, event *model.GenerationEvent) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO generation_events
		(id, client, length, lowercase, capitals, digits, symbols, count, hashed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Client, event.Length,
		event.Lowercase, event.Capitals, event.Digits, event.Symbols,
		event.Count, event.Hashed, event.CreatedAt,
	)
	return err
}

// ListRecent returns up to limit events for client, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, client string, limit int) ([]model.GenerationEvent, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	query := `SELECT id, client, length, lowercase, capitals, digits, symbols, count, hashed, created_at
		FROM generation_events WHERE client = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, client, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.GenerationEvent{}
	for rows.Next() {
		var e model.GenerationEvent
		if err := rows.Scan(
			&e.ID, &e.Client, &e.Length,
			&e.Lowercase, &e.Capitals, &e.Digits, &e.Symbols,
			&e.Count, &e.Hashed, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// ClampLimit bounds a requested history size to 1..MaxHistoryLimit, defaulting to 20.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 20
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
