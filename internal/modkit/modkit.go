// Package modkit is the contract api modules implement and the options they are built from
package modkit

import (
	phttp "meetgrid/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Builder is the shape of every module constructor
type Builder func(Deps, ...Option) Module
