package module

import (
	"context"

	"meetgrid/internal/services/api/events/domain"
	esvc "meetgrid/internal/services/api/events/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Reader is the read side other modules may use
type Reader interface {
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	Results(ctx context.Context, id string) (domain.Results, error)
}

// Janitor purges expired events until ctx ends, the binary runs it next to the http server
type Janitor interface {
	Run(ctx context.Context) error
}

// Ports is the events port set
type Ports struct {
	Reader  Reader
	Janitor Janitor
}

// adaptEventsPort exposes the read side of the service for cross-module usage
type adaptEventsPort struct{ svc esvc.Service }

func (a adaptEventsPort) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return a.svc.GetEvent(ctx, id)
}

func (a adaptEventsPort) Results(ctx context.Context, id string) (domain.Results, error) {
	return a.svc.Results(ctx, id)
}
