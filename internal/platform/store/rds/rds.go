// Package rds opens the go-redis client used for caching and session revocation
package rds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the client
type Config struct {
	Addr     string
	Password string
	DB       int

	DialTimeout time.Duration
}

// Open builds a client and pings it once
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	dt := cfg.DialTimeout
	if dt <= 0 {
		dt = 3 * time.Second
	}
	c := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dt,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Addr, err)
	}
	return c, nil
}
