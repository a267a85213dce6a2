// Package cache is a Redis read-through cache in front of the account repo
// Redis failures fall back to the database and are only logged
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"aidetector/internal/modkit/repokit"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	"aidetector/internal/services/accounts/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a cached account can get
const DefaultTTL = 5 * time.Minute

const label = "accounts"

// Cache stores accounts as JSON under acct:<id>
type Cache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	log    logger.Logger
	hits   prometheus.Counter
	misses prometheus.Counter
}

// New returns nil when rdb is nil; a nil *Cache is a valid no-op cache
func New(rdb redis.UniversalClient, ttl time.Duration, m *metrics.Metrics) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{rdb: rdb, ttl: ttl, log: *logger.Named("accounts.cache")}
	if m != nil {
		c.hits = m.CacheHits.WithLabelValues(label)
		c.misses = m.CacheMisses.WithLabelValues(label)
	}
	return c
}

// Key is the Redis key for id
func Key(id string) string { return "acct:" + id }

// GenKey counts invalidations of id; a fill only lands if it is unchanged
func GenKey(id string) string { return "acct:" + id + ":gen" }

var errStaleFill = errors.New("account changed during cache fill")

// generation reads the invalidation counter for id; "" when unset
func (c *Cache) generation(ctx context.Context, id string) (string, error) {
	g, err := c.rdb.Get(ctx, GenKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return g, err
}

func (c *Cache) get(ctx context.Context, id string) (domain.Account, bool) {
	raw, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("account_id", id).Msg("cache read failed")
		}
		inc(c.misses)
		return domain.Account{}, false
	}
	var a domain.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		c.log.Warn().Err(err).Str("account_id", id).Msg("cache entry unreadable")
		c.Invalidate(ctx, id)
		inc(c.misses)
		return domain.Account{}, false
	}
	inc(c.hits)
	return a, true
}

// fill stores a read at generation gen; it is dropped when an invalidation
// happened after gen was taken
func (c *Cache) fill(ctx context.Context, a domain.Account, gen string) {
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		now, err := tx.Get(ctx, GenKey(a.ID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if now != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, Key(a.ID), raw, c.ttl)
			return nil
		})
		return err
	}, GenKey(a.ID))
	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Str("account_id", a.ID).Msg("cache fill skipped; account changed")
	default:
		c.log.Warn().Err(err).Str("account_id", a.ID).Msg("cache write failed")
	}
}

// Invalidate drops id; safe on a nil Cache
func (c *Cache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, GenKey(id))
		p.Expire(ctx, GenKey(id), 2*c.ttl)
		p.Del(ctx, Key(id))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("account_id", id).Msg("cache invalidate failed")
	}
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// Cached decorates a domain.Repo; GetForUpdate always reaches the database
type Cached struct {
	inner domain.Repo
	c     *Cache
}

var _ domain.Repo = (*Cached)(nil)

// Wrap returns inner unchanged when c is nil
func Wrap(inner domain.Repo, c *Cache) domain.Repo {
	if c == nil {
		return inner
	}
	return &Cached{inner: inner, c: c}
}

// Binder wraps every repo b binds
func Binder(b repokit.Binder[domain.Repo], c *Cache) repokit.Binder[domain.Repo] {
	return repokit.BindFunc[domain.Repo](func(q repokit.Queryer) domain.Repo {
		return Wrap(b.Bind(q), c)
	})
}

// Get implements domain.Repo
func (r *Cached) Get(ctx context.Context, id string) (domain.Account, error) {
	if a, ok := r.c.get(ctx, id); ok {
		return a, nil
	}
	gen, genErr := r.c.generation(ctx, id)
	a, err := r.inner.Get(ctx, id)
	if err != nil {
		return a, err
	}
	if genErr == nil {
		r.c.fill(ctx, a, gen)
	}
	return a, nil
}

// GetForUpdate implements domain.Repo
func (r *Cached) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	return r.inner.GetForUpdate(ctx, id)
}

// Create implements domain.Repo
func (r *Cached) Create(ctx context.Context, n domain.NewAccount) (domain.Account, bool, error) {
	a, created, err := r.inner.Create(ctx, n)
	if err == nil {
		r.c.Invalidate(ctx, n.ID)
	}
	return a, created, err
}

// Update implements domain.Repo
func (r *Cached) Update(ctx context.Context, id string, p domain.Patch) (domain.Account, error) {
	a, err := r.inner.Update(ctx, id, p)
	r.c.Invalidate(ctx, id)
	return a, err
}
