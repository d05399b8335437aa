package http

import (
	"net/http"

	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
)

type HomeHandler struct {
	HomeService *service.HomeService
}

// HandleHome lists the caller's events for the home screen.
//
//	@Summary		Home events
//	@Tags			Home
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.DataEnvelope{data=couplesdk.HomeResponse}
//	@Failure		401	{object}	httpx.ErrorEnvelope
//	@Router			/api/home [get].
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	events, err := h.HomeService.Home(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := couplesdk.HomeResponse{EventInfos: make([]couplesdk.EventInfo, 0, len(events))}
	for _, e := range events {
		resp.EventInfos = append(resp.EventInfos, couplesdk.EventInfo{
			CalendarID: e.CalendarID,
			CategoryID: e.CategoryID,
			EventAt:    e.EventAt,
		})
	}
	httpx.WriteData(w, resp)
}

// HandleCouple returns the home screen couple header.
//
//	@Summary		Home couple summary
//	@Description	coupleInfo is null when the caller has no partner.
//	@Tags			Home
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.DataEnvelope{data=couplesdk.HomeCoupleInfo}
//	@Failure		401	{object}	httpx.ErrorEnvelope
//	@Router			/api/home/couples [get].
func (h *HomeHandler) HandleCouple(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	info, err := h.HomeService.CoupleInfo(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := couplesdk.HomeCoupleInfo{AccountInfo: couplesdk.AccountInfo{Name: info.AccountName}}
	if c := info.Couple; c != nil {
		resp.CoupleInfo = &couplesdk.CoupleInfo{
			PartnerID:   c.PartnerID,
			PartnerName: c.PartnerName,
			StartDate:   c.StartDate.Format(couplesdk.DateLayout),
			DaysCount:   c.DaysCount,
		}
	}
	httpx.WriteData(w, resp)
}
