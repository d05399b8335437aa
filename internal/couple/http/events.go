package http

import (
	"net/http"

	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
)

type EventsHandler struct {
	EventService *service.EventService
}

// HandleCreate adds an event to one of the caller's calendars.
//
//	@Summary		Create an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couplesdk.CreateEventRequest	true	"Event; title and eventAt are required"
//	@Success		200		{object}	httpx.StatusEnvelope
//	@Failure		400		{object}	httpx.ErrorEnvelope
//	@Failure		401		{object}	httpx.ErrorEnvelope
//	@Failure		404		{object}	httpx.ErrorEnvelope	"Calendar missing or not accessible"
//	@Router			/api/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req couplesdk.CreateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	_, err := h.EventService.CreateEvent(r.Context(), p.AccountID, service.CreateEvent{
		CalendarID:  req.CalendarID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		EventAt:     req.EventAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteStatus(w)
}
