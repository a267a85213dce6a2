package httpkit

import (
	"net/http"

	pstrings "aidetector/internal/platform/strings"
)

// MountUnder routes prefix to a subrouter with mw applied
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(pstrings.MustPrefix(prefix), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
