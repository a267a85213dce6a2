// Package repo writes detection events to ClickHouse
package repo

import (
	"context"
	_ "embed"
	"fmt"

	"aidetector/internal/platform/store"
	"aidetector/internal/services/events/domain"

	"github.com/google/uuid"
)

// Table is the ClickHouse table events land in
const Table = "detection_events"

//go:embed schema.sql
var schema string

// Migrate creates the events table; it is idempotent and a no-op without ClickHouse
func Migrate(ctx context.Context, ch store.Clickhouse) error {
	if ch == nil {
		return nil
	}
	if err := ch.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply events schema: %w", err)
	}
	return nil
}

// CH writes one row per event
type CH struct{ ch store.Clickhouse }

var _ domain.Writer = (*CH)(nil)

// NewCH returns the ClickHouse writer, or Noop when ch is nil
func NewCH(ch store.Clickhouse) domain.Writer {
	if ch == nil {
		return Noop{}
	}
	return &CH{ch: ch}
}

// Row renders e in table column order
func Row(e domain.Event) ([]any, error) {
	id, err := uuid.Parse(e.EventID)
	if err != nil {
		return nil, fmt.Errorf("event id %q: %w", e.EventID, err)
	}
	return []any{
		id,
		e.OccurredAt.UTC(),
		e.AccountID,
		e.Plan,
		e.Model,
		uint8(min(max(e.AIProbability, 0), 100)),
		e.Confidence,
		e.Assessment,
		uint32(max(e.TextLength, 0)),
		uint32(max(e.Latency.Milliseconds(), 0)),
	}, nil
}

// Write implements domain.Writer
func (w *CH) Write(ctx context.Context, e domain.Event) error {
	row, err := Row(e)
	if err != nil {
		return err
	}
	return w.ch.Insert(ctx, Table, [][]any{row})
}

// Noop drops events; used when ClickHouse is disabled
type Noop struct{}

// Write implements domain.Writer
func (Noop) Write(context.Context, domain.Event) error { return nil }
