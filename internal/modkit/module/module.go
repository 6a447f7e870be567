// Package module lets modules find each other's ports during bootstrap without import cycles
package module

import (
	phttp "meetgrid/internal/platform/net/http"
)

// Module is the subset of modkit.Module this package needs
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
