package http

import (
	"net/http"
	"time"

	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/cryptox"
	"github.com/calendar-couple/couple/pkg/httpx"
)

type CouplesHandler struct {
	InvitationService *service.InvitationService
	CoupleService     *service.CoupleService
}

// HandleCreateInvitation mints an invitation code for the caller.
//
//	@Summary		Create a couple invitation code
//	@Description	Returns a 6 character code the partner redeems within 24 hours.
//	@Tags			Couples
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.DataEnvelope{data=couplesdk.InvitationResponse}
//	@Failure		401	{object}	httpx.ErrorEnvelope
//	@Router			/api/couple/invitations [post].
func (h *CouplesHandler) HandleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	code, err := h.InvitationService.CreateInvitationCode(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, couplesdk.InvitationResponse{InvitationCode: code})
}

// HandleLink pairs the caller with the owner of an invitation code.
//
//	@Summary		Link a couple
//	@Description	Redeems the partner's invitation code. Creates the couple and a shared calendar.
//	@Tags			Couples
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couplesdk.LinkCoupleRequest	true	"Invitation code (6 characters)"
//	@Success		200		{object}	httpx.DataEnvelope{data=couplesdk.LinkCoupleResponse}
//	@Failure		400		{object}	httpx.ErrorEnvelope	"5001 invalid code, 5002 self invitation, 5003 already coupled"
//	@Failure		401		{object}	httpx.ErrorEnvelope
//	@Router			/api/couples [post].
func (h *CouplesHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req couplesdk.LinkCoupleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || len(req.InvitationCode) != cryptox.InvitationCodeLength {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	linked, err := h.CoupleService.LinkCouple(r.Context(), p.AccountID, req.InvitationCode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, couplesdk.LinkCoupleResponse{
		CoupleID:    linked.CoupleID,
		PartnerID:   linked.PartnerID,
		PartnerName: linked.PartnerName,
		StartDate:   linked.StartDate.Format(couplesdk.DateLayout),
		LinkedAt:    linked.LinkedAt,
	})
}

// HandleUpdateStartDate changes the couple's anniversary.
//
//	@Summary		Update the couple start date
//	@Tags			Couples
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couplesdk.UpdateStartDateRequest	true	"Start date as YYYY-MM-DD"
//	@Success		200		{object}	httpx.StatusEnvelope
//	@Failure		400		{object}	httpx.ErrorEnvelope
//	@Failure		401		{object}	httpx.ErrorEnvelope
//	@Failure		404		{object}	httpx.ErrorEnvelope	"Caller has no couple"
//	@Router			/api/couples/start-date [patch].
func (h *CouplesHandler) HandleUpdateStartDate(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req couplesdk.UpdateStartDateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	date, err := time.Parse(couplesdk.DateLayout, req.StartDate)
	if err != nil {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.CoupleService.UpdateStartDate(r.Context(), p.AccountID, date); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteStatus(w)
}

// HandleUnlink dissolves the caller's couple.
//
//	@Summary		Unlink a couple
//	@Tags			Couples
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.StatusEnvelope
//	@Failure		401	{object}	httpx.ErrorEnvelope
//	@Failure		404	{object}	httpx.ErrorEnvelope	"Caller has no couple"
//	@Router			/api/couples [delete].
func (h *CouplesHandler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	if err := h.CoupleService.Unlink(r.Context(), p.AccountID); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteStatus(w)
}
