package store

import (
	"context"
	"fmt"
	"time"

	"aidetector/internal/platform/logger"
	chx "aidetector/internal/platform/store/ch"
	"aidetector/internal/platform/store/pg"
	"aidetector/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// backoff doubles from 150ms up to a 2s ceiling
func backoff(attempt int) time.Duration {
	d := 150 * time.Millisecond << attempt
	if d <= 0 || d > 2*time.Second {
		return 2 * time.Second
	}
	return d
}

// openPG opens the pool, then pings it with backoff before publishing the adapter
func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.ConnectRetries, 1)
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var lastErr error
	for i := range attempts {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff(i)):
		}
	}
	p.Close()
	return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}

func openRedis(ctx context.Context, cfg RedisConfig) (redis.UniversalClient, error) {
	return rds.Open(ctx, rds.Config{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, App: cfg.AppName, Role: cfg.Role})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
