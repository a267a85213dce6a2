// Package service stamps and writes detection events
package service

import (
	"context"
	"time"

	"aidetector/internal/platform/logger"
	"aidetector/internal/services/events/domain"

	"github.com/google/uuid"
)

// Config for the recorder
type Config struct {
	WriteTimeout time.Duration
}

// Service implements domain.RecorderPort
type Service struct {
	w   domain.Writer
	cfg Config
	now func() time.Time
}

var _ domain.RecorderPort = (*Service)(nil)

// New constructs the recorder
func New(w domain.Writer, cfg Config) *Service {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 2 * time.Second
	}
	return &Service{w: w, cfg: cfg, now: time.Now}
}

// Record fills id and timestamp when missing and writes e
// The write outlives the request context but not WriteTimeout; failures are
// only logged
func (s *Service) Record(ctx context.Context, e domain.Event) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()
	if err := s.w.Write(wctx, e); err != nil {
		logger.C(ctx).Warn().Err(err).Str("event_id", e.EventID).Msg("detection event not recorded")
	}
}
