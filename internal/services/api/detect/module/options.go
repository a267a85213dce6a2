package module

import (
	"time"

	"aidetector/internal/adapters/classifier/hfinference"
	"aidetector/internal/core/detection"
	"aidetector/internal/modkit/httpkit"
	"aidetector/internal/platform/config"
	"aidetector/internal/platform/net/middleware"
	str "aidetector/internal/platform/strings"
)

// Backends
const (
	BackendHeuristic = "heuristic"
	BackendRemote    = "remote"
)

// Options configures the detect module
type Options struct {
	Backend        string
	MinLength      int
	AllowAnonymous bool
	Env            string

	Classifier hfinference.Options

	Tiers      map[string]middleware.TierLimit
	Fallback   middleware.TierLimit
	SweepEvery time.Duration

	// Stack is the shared middleware setup; the writer is always the flat one
	Stack httpkit.StackOptions
}

func tier(perMinute int) middleware.TierLimit {
	return middleware.TierLimit{PerMinute: perMinute, Burst: max(1, perMinute/4)}
}

// FromConfig reads CORE_DETECT_*, CORE_CLASSIFIER_* and CORE_API_ENV
// The classifier key also accepts HUGGING_FACE_API_KEY
func FromConfig(cfg config.Conf) Options {
	d := cfg.Prefix("CORE_DETECT_")
	c := cfg.Prefix("CORE_CLASSIFIER_")

	anon := tier(d.MayInt("RATE_ANONYMOUS", 10))
	return Options{
		Backend:        d.MayEnum("BACKEND", BackendHeuristic, BackendHeuristic, BackendRemote),
		MinLength:      d.MayInt("MIN_LENGTH", detection.DefaultMinLength),
		AllowAnonymous: d.MayBool("ALLOW_ANONYMOUS", false),
		Env:            cfg.Prefix("CORE_API_").MayString("ENV", "development"),
		Classifier: hfinference.Options{
			BaseURL: c.MayString("BASE_URL", ""),
			Model:   c.MayString("MODEL", ""),
			APIKey:  str.FirstNonEmpty(c.MayString("API_KEY", ""), cfg.MayString("HUGGING_FACE_API_KEY", "")),
			Timeout: c.MayDuration("TIMEOUT", 30*time.Second),
		},
		Tiers: map[string]middleware.TierLimit{
			"free":                   tier(d.MayInt("RATE_FREE", 20)),
			"pro":                    tier(d.MayInt("RATE_PRO", 120)),
			middleware.TierAnonymous: anon,
		},
		Fallback:   anon,
		SweepEvery: d.MayDuration("RATE_SWEEP", time.Minute),
	}
}
