package middleware

import (
	"net/http"
	"runtime/debug"

	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
)

// Recover turns a handler panic into a panic coded error rendered by write
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(write ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				write(w, r, perr.PanicErrf("panic recovered"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
