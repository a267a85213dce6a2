package store

import "aidetector/internal/platform/logger"

// Option adjusts the Store before backends open
type Option func(*Store) error

// WithLogger replaces the store logger
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
