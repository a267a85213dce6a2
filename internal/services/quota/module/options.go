package module

import (
	"aidetector/internal/core/quota"
	"aidetector/internal/platform/config"
)

// Options holds the quota settings
type Options struct {
	Policy   quota.Policy
	Calendar quota.Calendar
}

// FromConfig reads CORE_QUOTA_*
func FromConfig(cfg config.Conf) Options {
	q := cfg.Prefix("CORE_QUOTA_")
	return Options{
		Policy:   quota.Policy{FreeDailyLimit: q.MayInt("FREE_DAILY_LIMIT", quota.DefaultFreeDailyLimit)},
		Calendar: quota.NewCalendar(q.MayLocation("TIMEZONE", "UTC"), nil),
	}
}
