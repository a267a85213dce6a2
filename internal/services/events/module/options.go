package module

import (
	"time"

	"aidetector/internal/platform/config"
)

// Options holds configuration settings for the events module
type Options struct {
	WriteTimeout time.Duration
	AutoMigrate  bool
}

// FromConfig reads CORE_EVENTS_*
func FromConfig(cfg config.Conf) Options {
	ev := cfg.Prefix("CORE_EVENTS_")
	return Options{
		WriteTimeout: ev.MayDuration("WRITE_TIMEOUT", 2*time.Second),
		AutoMigrate:  ev.MayBool("AUTO_MIGRATE", false),
	}
}
