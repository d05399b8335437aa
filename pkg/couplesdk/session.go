package couplesdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Session holds a token pair and performs authenticated calls. It is safe
// for concurrent use.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// doAuthRequest sends an authenticated request. An expired-token answer
// triggers one refresh followed by one retry.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token := s.AccessToken()

	resp, err := s.client.doRequest(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	_, apiErr := readBody(resp)
	var expired *APIError
	if !errors.As(apiErr, &expired) || expired.Code != CodeExpiredToken {
		return nil, apiErr
	}

	if err := s.refresh(ctx, token); err != nil {
		return nil, err
	}
	return s.client.doRequest(ctx, method, path, s.AccessToken(), body)
}

// refresh rotates the token pair unless another goroutine already replaced
// stale.
func (s *Session) refresh(ctx context.Context, stale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != stale {
		return nil
	}
	if s.refreshToken == "" {
		return errors.New("access token expired and no refresh token available")
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	return nil
}

// Logout revokes the session on the server and forgets the tokens.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/api/auth/logout", s.AccessToken(), nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}

// Calendars lists the calendars the account can see.
func (s *Session) Calendars(ctx context.Context) ([]CalendarResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/calendars", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]CalendarResponse](resp)
}

// Calendar returns one calendar.
func (s *Session) Calendar(ctx context.Context, calendarID int64) (*CalendarResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, calendarPath(calendarID), nil)
	if err != nil {
		return nil, err
	}

	cal, err := decodeData[CalendarResponse](resp)
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

// UpdateCalendar replaces the editable fields of a calendar.
func (s *Session) UpdateCalendar(ctx context.Context, calendarID int64, req UpdateCalendarRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, calendarPath(calendarID), req)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// CreateEvent adds an event to a calendar.
func (s *Session) CreateEvent(ctx context.Context, req CreateEventRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/events", req)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// CreateInvitation mints a couple invitation code valid for 24 hours.
func (s *Session) CreateInvitation(ctx context.Context) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/couple/invitations", nil)
	if err != nil {
		return "", err
	}

	inv, err := decodeData[InvitationResponse](resp)
	if err != nil {
		return "", err
	}
	return inv.InvitationCode, nil
}

// LinkCouple accepts a partner's invitation code.
func (s *Session) LinkCouple(ctx context.Context, code string) (*LinkCoupleResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/couples", LinkCoupleRequest{InvitationCode: code})
	if err != nil {
		return nil, err
	}

	linked, err := decodeData[LinkCoupleResponse](resp)
	if err != nil {
		return nil, err
	}
	return &linked, nil
}

// UpdateStartDate changes the anniversary of the caller's couple.
func (s *Session) UpdateStartDate(ctx context.Context, date time.Time) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/api/couples/start-date", UpdateStartDateRequest{
		StartDate: date.Format(DateLayout),
	})
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// Unlink dissolves the caller's couple.
func (s *Session) Unlink(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/couples", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// Home returns the home screen event summary.
func (s *Session) Home(ctx context.Context) (*HomeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/home", nil)
	if err != nil {
		return nil, err
	}

	home, err := decodeData[HomeResponse](resp)
	if err != nil {
		return nil, err
	}
	return &home, nil
}

// HomeCouple returns the home screen couple summary.
func (s *Session) HomeCouple(ctx context.Context) (*HomeCoupleInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/home/couples", nil)
	if err != nil {
		return nil, err
	}

	info, err := decodeData[HomeCoupleInfo](resp)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func calendarPath(id int64) string {
	return "/api/calendars/" + strconv.FormatInt(id, 10)
}
