package couplesdk

import "time"

// DateLayout is the wire format of calendar dates such as a couple start date.
const DateLayout = "2006-01-02"

// ============================================================================
// Auth
// ============================================================================

// SignInRequest is the body of POST /api/auth/sign-in.
type SignInRequest struct {
	Code     string `json:"code"`
	Provider string `json:"provider"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ============================================================================
// Calendars & events
// ============================================================================

// CalendarResponse describes one calendar.
type CalendarResponse struct {
	ID          int64     `json:"calendarId"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateCalendarRequest is the body of PUT /api/calendars/{calendarId}.
type UpdateCalendarRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CreateEventRequest is the body of POST /api/events.
type CreateEventRequest struct {
	CalendarID  int64     `json:"calendarId"`
	CategoryID  int64     `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventAt     time.Time `json:"eventAt"`
}

// ============================================================================
// Couples
// ============================================================================

// InvitationResponse carries a newly minted invitation code.
type InvitationResponse struct {
	InvitationCode string `json:"invitationCode"`
}

// LinkCoupleRequest is the body of POST /api/couples.
type LinkCoupleRequest struct {
	InvitationCode string `json:"invitationCode"`
}

// LinkCoupleResponse describes the couple that was just formed.
type LinkCoupleResponse struct {
	CoupleID    int64     `json:"coupleId"`
	PartnerID   int64     `json:"partnerId"`
	PartnerName string    `json:"partnerName"`
	StartDate   string    `json:"startDate"`
	LinkedAt    time.Time `json:"linkedAt"`
}

// UpdateStartDateRequest is the body of PATCH /api/couples/start-date.
type UpdateStartDateRequest struct {
	StartDate string `json:"startDate"`
}

// ============================================================================
// Home
// ============================================================================

// HomeResponse lists the caller's upcoming events.
type HomeResponse struct {
	EventInfos []EventInfo `json:"eventInfos"`
}

// EventInfo is a single entry of HomeResponse.
type EventInfo struct {
	CalendarID int64     `json:"calendarId"`
	CategoryID int64     `json:"categoryId"`
	EventAt    time.Time `json:"eventAt"`
}

// HomeCoupleInfo is the couple summary shown on the home screen. CoupleInfo
// is null when the caller has no partner.
type HomeCoupleInfo struct {
	AccountInfo AccountInfo `json:"accountInfo"`
	CoupleInfo  *CoupleInfo `json:"coupleInfo"`
}

// AccountInfo names the caller.
type AccountInfo struct {
	Name string `json:"name"`
}

// CoupleInfo summarises the caller's couple.
type CoupleInfo struct {
	PartnerID   int64  `json:"partnerId"`
	PartnerName string `json:"partnerName"`
	StartDate   string `json:"startDate"`
	DaysCount   int    `json:"daysCount"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each backing store (readyz only).
type HealthChecks struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// dataEnvelope is the success body of endpoints that return data.
type dataEnvelope[T any] struct {
	Data   T   `json:"data"`
	Status int `json:"status"`
}
