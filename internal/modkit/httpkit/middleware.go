package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"aidetector/internal/platform/metrics"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration // 0 disables
	Slow    time.Duration
	Metrics *metrics.Metrics
	Writer  middleware.ErrorWriter // nil writes the envelope
}

// CommonStack is the per scope middleware: recover, metrics, access log, cors, compression, timeout
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	write := o.Writer
	if write == nil {
		write = phttp.RespondError
	}
	stack := []func(http.Handler) http.Handler{
		middleware.Recover(write),
	}
	if o.Metrics != nil {
		stack = append(stack, o.Metrics.Middleware)
	}
	stack = append(stack,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
	)
	if o.Timeout > 0 {
		stack = append(stack, middleware.Timeout(o.Timeout))
	}
	return stack
}

// Auth wraps middleware.Auth with the envelope error writer
func Auth(a middleware.Authenticator) func(http.Handler) http.Handler {
	return middleware.Auth(a, phttp.RespondError)
}
