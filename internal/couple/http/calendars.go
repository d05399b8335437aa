package http

import (
	"net/http"
	"strconv"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
)

type CalendarsHandler struct {
	CalendarService *service.CalendarService
}

// HandleList lists the caller's calendars.
//
//	@Summary		List calendars
//	@Description	Returns calendars the caller owns or is an active member of.
//	@Tags			Calendars
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.DataEnvelope{data=[]couplesdk.CalendarResponse}
//	@Failure		401	{object}	httpx.ErrorEnvelope
//	@Router			/api/calendars [get].
func (h *CalendarsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	cals, err := h.CalendarService.ListCalendars(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]couplesdk.CalendarResponse, 0, len(cals))
	for _, c := range cals {
		out = append(out, calendarResponse(c))
	}
	httpx.WriteData(w, out)
}

// HandleGet returns one calendar.
//
//	@Summary		Get a calendar
//	@Tags			Calendars
//	@Security		BearerAuth
//	@Produce		json
//	@Param			calendarId	path		int	true	"Calendar ID"
//	@Success		200			{object}	httpx.DataEnvelope{data=couplesdk.CalendarResponse}
//	@Failure		400			{object}	httpx.ErrorEnvelope	"Non-numeric calendar id"
//	@Failure		401			{object}	httpx.ErrorEnvelope
//	@Failure		404			{object}	httpx.ErrorEnvelope	"Missing calendar or no access"
//	@Router			/api/calendars/{calendarId} [get].
func (h *CalendarsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	id, ok := calendarID(r)
	if !ok {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	cal, err := h.CalendarService.GetCalendar(r.Context(), p.AccountID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, calendarResponse(cal))
}

// HandleUpdate replaces the editable fields of a calendar.
//
//	@Summary		Update a calendar
//	@Tags			Calendars
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			calendarId	path		int									true	"Calendar ID"
//	@Param			request		body		couplesdk.UpdateCalendarRequest	true	"Type must be PERSONAL or COUPLE"
//	@Success		200			{object}	httpx.StatusEnvelope
//	@Failure		400			{object}	httpx.ErrorEnvelope
//	@Failure		401			{object}	httpx.ErrorEnvelope
//	@Failure		404			{object}	httpx.ErrorEnvelope
//	@Router			/api/calendars/{calendarId} [put].
func (h *CalendarsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	id, ok := calendarID(r)
	if !ok {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req couplesdk.UpdateCalendarRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.CalendarService.UpdateCalendar(r.Context(), p.AccountID, id, service.UpdateCalendar{
		Name:        req.Name,
		Type:        req.Type,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteStatus(w)
}

func calendarID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("calendarId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func calendarResponse(c domain.Calendar) couplesdk.CalendarResponse {
	return couplesdk.CalendarResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Type:        string(c.Type),
		Color:       c.Color,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
