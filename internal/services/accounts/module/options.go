package module

import (
	"time"

	"aidetector/internal/core/quota"
	"aidetector/internal/platform/config"
	"aidetector/internal/services/accounts/cache"
)

// Options configures the accounts module
type Options struct {
	CacheTTL    time.Duration
	AutoMigrate bool
	LockTimeout time.Duration

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Calendar is shared with the quota module so both agree on "today"
	Calendar quota.Calendar
}

// FromConfig reads CORE_ACCOUNTS_*, CORE_AUTH_* and CORE_QUOTA_TIMEZONE
func FromConfig(cfg config.Conf) Options {
	acc := cfg.Prefix("CORE_ACCOUNTS_")
	auth := cfg.Prefix("CORE_AUTH_")
	q := cfg.Prefix("CORE_QUOTA_")
	return Options{
		CacheTTL:    acc.MayDuration("CACHE_TTL", cache.DefaultTTL),
		AutoMigrate: acc.MayBool("AUTO_MIGRATE", false),
		LockTimeout: acc.MayDuration("LOCK_TIMEOUT", 2*time.Second),
		JWTSecret:   auth.MustString("JWT_SECRET"),
		JWTIssuer:   auth.MayString("JWT_ISSUER", ""),
		JWTAudience: auth.MayString("JWT_AUDIENCE", ""),
		Calendar:    quota.NewCalendar(q.MayLocation("TIMEZONE", "UTC"), nil),
	}
}
