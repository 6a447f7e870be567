package domain

import (
	"context"

	"meetgrid/internal/core/slots"
)

// ServicePort is the events service as handlers and other modules see it
type ServicePort interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	Slots(ctx context.Context, id string) ([]slots.Instant, error)
	SubmitResponse(ctx context.Context, id string, in SubmitResponseInput) (Response, error)
	LookupResponse(ctx context.Context, id string, in LookupInput) (Response, error)
	Participants(ctx context.Context, id string) ([]Participant, error)
	Results(ctx context.Context, id string) (Results, error)
}
