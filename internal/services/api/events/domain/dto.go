// Package domain holds the events module's request and response shapes and its ports
package domain

import (
	"time"

	"meetgrid/internal/core/slots"
)

// CreateEventInput is the body of POST /events
// the scheme fields are cross checked by slots.Event.Validate after binding
type CreateEventInput struct {
	Title              string           `json:"title" validate:"required,max=200"`
	Description        string           `json:"description,omitempty" validate:"max=2000"`
	StartDate          string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string           `json:"end_date" validate:"required,datetime=2006-01-02"`
	Mode               string           `json:"mode" validate:"required,oneof=timeRange fullDay"`
	TimeMode           string           `json:"time_mode,omitempty" validate:"omitempty,oneof=standard period custom"`
	DayStart           string           `json:"day_start,omitempty" validate:"omitempty,clock"`
	DayEnd             string           `json:"day_end,omitempty" validate:"omitempty,clock"`
	SlotMinutes        int              `json:"slot_minutes,omitempty" validate:"min=0,max=1440"`
	MinDurationMinutes int              `json:"min_duration_minutes,omitempty" validate:"min=0,max=1440"`
	CustomSlots        []slots.Interval `json:"custom_slots,omitempty" validate:"max=48"`
}

// SubmitResponseInput is the body of POST /events/{id}/responses
type SubmitResponseInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,max=254"`
	Slots []int  `json:"slots" validate:"max=10000,dive,min=0"`
}

// LookupInput is the body of POST /events/{id}/responses/lookup
type LookupInput struct {
	Email string `json:"email" validate:"required,max=254"`
}

// Event is an event as the api returns it
type Event struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	StartDate          slots.Date       `json:"start_date"`
	EndDate            slots.Date       `json:"end_date"`
	Mode               string           `json:"mode"`
	TimeMode           string           `json:"time_mode,omitempty"`
	DayStart           string           `json:"day_start,omitempty"`
	DayEnd             string           `json:"day_end,omitempty"`
	SlotMinutes        int              `json:"slot_minutes,omitempty"`
	MinDurationMinutes int              `json:"min_duration_minutes"`
	CustomSlots        []slots.Interval `json:"custom_slots,omitempty"`
	Days               int              `json:"days"`
	SlotsPerDay        int              `json:"slots_per_day"`
	TotalSlots         int              `json:"total_slots"`
	CreatedAt          time.Time        `json:"created_at"`
}

// Response is one participant's stored submission, only returned to its owner
type Response struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Slots     []int     `json:"slots"`
	Created   bool      `json:"created"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant is the public view of a response, no email
type Participant struct {
	Name      string    `json:"name"`
	Slots     []int     `json:"slots"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recommendation is a ranked window with the calendar reading of its first and last slot
type Recommendation struct {
	StartIndex int           `json:"start_index"`
	Size       int           `json:"size"`
	MinCount   int           `json:"min_count"`
	AvgCount   float64       `json:"avg_count"`
	First      slots.Instant `json:"first"`
	Last       slots.Instant `json:"last"`
}

// Results is GET /events/{id}/results
// Available[i] lists who picked slot i, in submission order
type Results struct {
	EventID           string           `json:"event_id"`
	TotalSlots        int              `json:"total_slots"`
	TotalParticipants int              `json:"total_participants"`
	Counts            []int            `json:"counts"`
	CommonSlots       []slots.Instant  `json:"common_slots"`
	Recommended       []Recommendation `json:"recommended"`
	Available         [][]string       `json:"available"`
}
