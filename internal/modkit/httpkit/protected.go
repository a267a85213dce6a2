package httpkit

import "aidetector/internal/platform/net/middleware"

// Protected mounts fn's routes in a group that requires a resolved session
func Protected(r Router, a middleware.Authenticator, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(a))
		fn(g)
	})
}
