package domain

import (
	"time"

	"meetgrid/internal/core/slots"
)

// EventRecord is an event as stored
type EventRecord struct {
	ID          string
	Title       string
	Description string
	Grid        slots.Event
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResponseRecord is a response as stored, Email is already normalised
type ResponseRecord struct {
	ID        string
	EventID   string
	Name      string
	Email     string
	Slots     []int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToEvent renders the api view of r
func (r EventRecord) ToEvent() Event {
	p := slots.PartsOf(r.Grid.Scheme)
	return Event{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		StartDate:          r.Grid.Start,
		EndDate:            r.Grid.End,
		Mode:               p.Mode,
		TimeMode:           p.TimeMode,
		DayStart:           p.DayStart,
		DayEnd:             p.DayEnd,
		SlotMinutes:        p.SlotMinutes,
		MinDurationMinutes: r.Grid.MinDurationMinutes,
		CustomSlots:        p.Custom,
		Days:               r.Grid.Days(),
		SlotsPerDay:        r.Grid.SlotsPerDay(),
		TotalSlots:         r.Grid.TotalSlots(),
		CreatedAt:          r.CreatedAt,
	}
}

// ToResponse renders the owner's view of r
func (r ResponseRecord) ToResponse(created bool) Response {
	return Response{
		ID:        r.ID,
		EventID:   r.EventID,
		Name:      r.Name,
		Email:     r.Email,
		Slots:     r.Slots,
		Created:   created,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToParticipant renders the public view of r
func (r ResponseRecord) ToParticipant() Participant {
	return Participant{Name: r.Name, Slots: r.Slots, UpdatedAt: r.UpdatedAt}
}
