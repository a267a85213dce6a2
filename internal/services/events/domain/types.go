// Package domain defines the detection event record and its writer port
package domain

import (
	"context"
	"time"
)

// Event is one completed detection
type Event struct {
	EventID       string
	OccurredAt    time.Time
	AccountID     string // empty for anonymous callers
	Plan          string
	Model         string
	AIProbability int
	Confidence    string
	Assessment    string
	TextLength    int
	Latency       time.Duration
}

// Writer appends events
type Writer interface {
	Write(ctx context.Context, e Event) error
}

// RecorderPort is what the API calls; it never fails the request
type RecorderPort interface {
	Record(ctx context.Context, e Event)
}
