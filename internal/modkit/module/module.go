// Package module is the module contract, kept apart from modkit so ports packages can import it
package module

import phttp "aidetector/internal/platform/net/http"

// Module mounts routes and exposes ports for other modules
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}
