// Package http provides http transport for events
package http

import (
	stdhttp "net/http"

	"meetgrid/internal/modkit/httpkit"
	"meetgrid/internal/services/api/events/domain"
	svc "meetgrid/internal/services/api/events/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateEventInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.delete)
	httpkit.Get(r, "/{id}/slots", h.slots)
	httpkit.PostJSON[domain.SubmitResponseInput](r, "/{id}/responses", h.submit)
	httpkit.PostJSON[domain.LookupInput](r, "/{id}/responses/lookup", h.lookup)
	httpkit.Get(r, "/{id}/responses", h.participants)
	httpkit.Get(r, "/{id}/results", h.results)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /events Events create
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param payload body domain.CreateEventInput true "Event"
// @Success 201 {object} domain.Event "created"
// @Failure 400 {object} httpkit.Envelope "invalid configuration"
// @Router /events [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateEventInput) (any, error) {
	ev, err := h.svc.CreateEvent(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(ev), nil
}

// swagger:route GET /events/{id} Events get
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} domain.Event "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.GetEvent(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route DELETE /events/{id} Events delete
// @Summary Delete an event and its responses
// @Tags events
// @Param id path string true "Event id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.DeleteEvent(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route GET /events/{id}/slots Events slots
// @Summary Slot catalogue
// @Description Every slot index with its date, clock bounds and label
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {array} slots.Instant "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id}/slots [get]
func (h *handlers) slots(r *stdhttp.Request) (any, error) {
	return h.svc.Slots(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route POST /events/{id}/responses Events submit
// @Summary Submit or replace availability
// @Description One response per normalised email, a resubmission overwrites the earlier one
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param payload body domain.SubmitResponseInput true "Response"
// @Success 201 {object} domain.Response "created"
// @Success 200 {object} domain.Response "updated"
// @Failure 400 {object} httpkit.Envelope "invalid response"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id}/responses [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitResponseInput) (any, error) {
	out, err := h.svc.SubmitResponse(r.Context(), httpkit.Param(r, "id"), in)
	if err != nil {
		return nil, err
	}
	if out.Created {
		return httpkit.Created(out), nil
	}
	return out, nil
}

// swagger:route POST /events/{id}/responses/lookup Events lookup
// @Summary Find a previous response by email
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param payload body domain.LookupInput true "Lookup"
// @Success 200 {object} domain.Response "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id}/responses/lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	return h.svc.LookupResponse(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route GET /events/{id}/responses Events participants
// @Summary List participants
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {array} domain.Participant "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id}/responses [get]
func (h *handlers) participants(r *stdhttp.Request) (any, error) {
	return h.svc.Participants(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route GET /events/{id}/results Events results
// @Summary Aggregated availability
// @Description Per slot counts, slots everyone can attend and ranked windows
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} domain.Results "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /events/{id}/results [get]
func (h *handlers) results(r *stdhttp.Request) (any, error) {
	return h.svc.Results(r.Context(), httpkit.Param(r, "id"))
}
