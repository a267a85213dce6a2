package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	perr "aidetector/internal/platform/errors"
	pnet "aidetector/internal/platform/net"

	"golang.org/x/time/rate"
)

// TierAnonymous is the tier for callers without a session
const TierAnonymous = "anonymous"

// TierLimit is a token bucket sized per minute
// PerMinute <= 0 means unlimited; Burst below 1 is raised to 1
type TierLimit struct {
	PerMinute int
	Burst     int
}

// Unlimited reports whether the tier has no bucket
func (t TierLimit) Unlimited() bool { return t.PerMinute <= 0 }

// Classifier picks the bucket key and tier for a request
type Classifier func(r *http.Request) (key, tier string)

// RateLimiter throttles request bursts per account or per ip; it is separate
// from the daily detection quota
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	tiers    map[string]TierLimit
	fallback TierLimit
	classify Classifier
	now      func() time.Time
}

// NewRateLimiter builds a limiter; tiers missing from the map use fallback
// A zero fallback leaves unknown tiers unlimited
func NewRateLimiter(tiers map[string]TierLimit, fallback TierLimit, classify Classifier) *RateLimiter {
	if classify == nil {
		classify = ByAccountOrIP
	}
	return &RateLimiter{
		buckets:  make(map[string]*rate.Limiter),
		tiers:    tiers,
		fallback: fallback,
		classify: classify,
		now:      time.Now,
	}
}

// ByAccountOrIP keys on the session account when present, else on client ip
func ByAccountOrIP(r *http.Request) (string, string) {
	if id := pnet.AccountID(r.Context()); id != "" {
		return "acct:" + id, "free"
	}
	ip := pnet.ClientIP(r.Context())
	if ip == "" {
		ip = clientIP(r)
	}
	return "ip:" + ip, TierAnonymous
}

func (rl *RateLimiter) tier(name string) TierLimit {
	if lim, ok := rl.tiers[name]; ok {
		return lim
	}
	return rl.fallback
}

// limiter returns the bucket for key, nil when the tier is unlimited
func (rl *RateLimiter) limiter(key, tier string) *rate.Limiter {
	lim := rl.tier(tier)
	if lim.Unlimited() {
		return nil
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.buckets[key]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(float64(lim.PerMinute)/60.0), max(1, lim.Burst))
	rl.buckets[key] = l
	return l
}

// Allow reports whether the request may proceed now
func (rl *RateLimiter) Allow(r *http.Request) bool {
	key, tier := rl.classify(r)
	l := rl.limiter(key, tier)
	if l == nil {
		return true
	}
	return l.AllowN(rl.now(), 1)
}

// Middleware rejects throttled requests with a too many requests error
func (rl *RateLimiter) Middleware(write ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(r) {
				w.Header().Set("Retry-After", "60")
				write(w, r, perr.TooManyf("Too many requests. Please slow down."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Sweep drops buckets that have refilled to full burst
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	n := 0
	for k, l := range rl.buckets {
		if l.TokensAt(now) >= float64(l.Burst()) {
			delete(rl.buckets, k)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx ends
func (rl *RateLimiter) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rl.Sweep()
		}
	}
}
