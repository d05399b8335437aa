package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	red "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	httpapi "github.com/calendar-couple/couple/internal/couple/http"
	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/internal/couple/service"
	redisdriver "github.com/calendar-couple/couple/internal/couple/store/drivers/redis"
	"github.com/calendar-couple/couple/internal/couple/store/drivers/sqlite"
	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/jwtx"
	"github.com/calendar-couple/couple/pkg/slogx"
)

var testStart = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeProvider resolves fixed codes and rejects everything else as an
// upstream failure.
type fakeProvider struct {
	name       string
	identities map[string]oauth.Identity
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Resolve(ctx context.Context, code string) (oauth.Identity, error) {
	id, ok := p.identities[code]
	if !ok {
		return oauth.Identity{}, fmt.Errorf("%w: unknown code", oauth.ErrIdentityProvider)
	}
	id.Provider = p.name
	return id, nil
}

type testServer struct {
	srv   *httptest.Server
	sdk   *couplesdk.SDKClient
	store *sqlite.Store
	redis *miniredis.Miniredis
	clock *clock.Fake
	codec *jwtx.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mr := miniredis.RunT(t)
	client := red.NewClient(&red.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := clock.NewFake(testStart)
	sessions := redisdriver.New(client, c)

	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret:   []byte(strings.Repeat("s", 32)),
		Issuer:   "couple-api",
		Audience: "couple-app",
	}, c)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	authMetrics, err := service.NewMetrics(reg)
	require.NoError(t, err)
	httpMetrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: reg})
	require.NoError(t, err)

	google := &fakeProvider{name: oauth.ProviderGoogle, identities: map[string]oauth.Identity{
		"c1": {ExternalID: "u1", Email: "a@example.com", Name: "A"},
		"c2": {ExternalID: "u2", Email: "b@example.com", Name: "B"},
	}}

	accounts := &service.AccountDirectory{Store: st, Clock: c}
	calendars := &service.CalendarService{Store: st, Clock: c}
	events := &service.EventService{Store: st, Calendars: calendars, Clock: c}
	invitations := &service.InvitationService{Codes: sessions}

	router := httpapi.NewRouter([]string{"*"}, "test", st, sessions, slogx.Discard())
	router.Metrics = httpMetrics
	router.Gatherer = reg
	router.AuthService = &service.AuthService{
		Identities: oauth.NewRegistry(google),
		Accounts:   accounts,
		Sessions:   sessions,
		Codec:      codec,
		Metrics:    authMetrics,
	}
	router.CalendarService = calendars
	router.EventService = events
	router.InvitationService = invitations
	router.CoupleService = &service.CoupleService{Store: st, Accounts: accounts, Invitations: invitations, Clock: c}
	router.HomeService = &service.HomeService{Store: st, Accounts: accounts, Events: events, Clock: c}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		srv:   srv,
		sdk:   couplesdk.NewSDKClient(srv.URL),
		store: st,
		redis: mr,
		clock: c,
		codec: codec,
	}
}

func (ts *testServer) signIn(t *testing.T, code string) *couplesdk.Session {
	t.Helper()

	sess, err := ts.sdk.SignIn(context.Background(), "google", code)
	require.NoError(t, err)
	return sess
}

// do sends a raw request and decodes the envelope into a generic map.
func (ts *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func requireEnvelope(t *testing.T, want *couplesdk.APIError, status int, body map[string]any) {
	t.Helper()

	require.Equal(t, want.HTTPStatus, status)
	require.InDelta(t, want.Code, body["status"], 0)
	require.Equal(t, want.Message, body["message"])
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	t.Run("issues a token pair", func(t *testing.T) {
		sess := ts.signIn(t, "c1")
		require.NotEmpty(t, sess.AccessToken())
		require.NotEmpty(t, sess.RefreshToken())
		require.NoError(t, ts.codec.VerifyAccessToken(sess.AccessToken()))
	})

	t.Run("provider name is case insensitive", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{"code":"c1","provider":"GOOGLE"}`)
		require.Equal(t, http.StatusOK, status)
		require.InDelta(t, 200, body["status"], 0)
	})

	t.Run("unknown provider", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{"code":"c1","provider":"naver"}`)
		requireEnvelope(t, couplesdk.ErrUnknownProvider, status, body)
	})

	t.Run("provider rejects code", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{"code":"nope","provider":"google"}`)
		requireEnvelope(t, couplesdk.ErrUnauthorized, status, body)
	})

	t.Run("missing fields", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{"provider":"google"}`)
		requireEnvelope(t, couplesdk.ErrInvalidRequest, status, body)
	})
}

func TestSignInRateLimit(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	for range httpx.StrictLimit.Burst {
		status, _ := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{}`)
		require.Equal(t, http.StatusBadRequest, status)
	}

	status, body := ts.do(t, http.MethodPost, "/api/auth/sign-in", "", `{}`)
	requireEnvelope(t, couplesdk.ErrRateLimited, status, body)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()
	sess := ts.signIn(t, "c1")
	first := sess.RefreshToken()

	rotated, err := ts.sdk.Refresh(ctx, first)
	require.NoError(t, err)
	require.NotEqual(t, first, rotated.RefreshToken)

	// Replaying the superseded token ends the session.
	_, err = ts.sdk.Refresh(ctx, first)
	require.ErrorIs(t, err, couplesdk.ErrInvalidToken)

	_, err = ts.sdk.Refresh(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, couplesdk.ErrRefreshExpired)

	t.Run("garbage token", func(t *testing.T) {
		_, err := ts.sdk.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, couplesdk.ErrMalformedToken)
	})

	t.Run("empty token", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/refresh", "", `{"refreshToken":""}`)
		requireEnvelope(t, couplesdk.ErrInvalidRequest, status, body)
	})
}

func TestSessionRefreshesExpiredAccessToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()
	sess := ts.signIn(t, "c1")
	stale := sess.AccessToken()

	ts.clock.Advance(jwtx.DefaultAccessTokenTTL + time.Minute)

	status, body := ts.do(t, http.MethodGet, "/api/home", stale, "")
	requireEnvelope(t, couplesdk.ErrExpiredToken, status, body)

	home, err := sess.Home(ctx)
	require.NoError(t, err)
	require.Empty(t, home.EventInfos)
	require.NotEqual(t, stale, sess.AccessToken())
}

func TestRequestAuthenticator(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()

	t.Run("anonymous request to protected route", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/calendars", "", "")
		requireEnvelope(t, couplesdk.ErrUnauthorized, status, body)
	})

	t.Run("lower case scheme is anonymous", func(t *testing.T) {
		sess := ts.signIn(t, "c1")

		req, err := http.NewRequest(http.MethodGet, ts.srv.URL+"/api/calendars", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "bearer "+sess.AccessToken())

		resp, err := ts.srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed token", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/calendars", "garbage", "")
		requireEnvelope(t, couplesdk.ErrMalformedToken, status, body)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		sess := ts.signIn(t, "c1")
		status, body := ts.do(t, http.MethodGet, "/api/calendars", sess.RefreshToken(), "")
		requireEnvelope(t, couplesdk.ErrInvalidToken, status, body)
	})

	t.Run("logged out token", func(t *testing.T) {
		sess := ts.signIn(t, "c2")
		token := sess.AccessToken()
		require.NoError(t, sess.Logout(ctx))

		status, body := ts.do(t, http.MethodGet, "/api/calendars", token, "")
		requireEnvelope(t, couplesdk.ErrRevokedToken, status, body)
	})
}

func TestAccountStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                       string
		deleted, banned, withdrawn bool
		want                       *couplesdk.APIError
	}{
		{"banned", false, true, false, couplesdk.ErrBannedAccount},
		{"withdrawn", false, false, true, couplesdk.ErrWithdrawnAccount},
		{"deleted", true, false, false, couplesdk.ErrWithdrawnAccount},
		{"banned wins over withdrawn", false, true, true, couplesdk.ErrBannedAccount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			sess := ts.signIn(t, "c1")

			id, err := ts.codec.AccountID(sess.AccessToken())
			require.NoError(t, err)
			require.NoError(t, ts.store.Accounts().UpdateStatus(context.Background(), id, tc.deleted, tc.banned, tc.withdrawn))

			status, body := ts.do(t, http.MethodGet, "/api/home", sess.AccessToken(), "")
			requireEnvelope(t, tc.want, status, body)
		})
	}
}

func TestCalendarsAndEvents(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()
	a := ts.signIn(t, "c1")
	b := ts.signIn(t, "c2")

	cals, err := a.Calendars(ctx)
	require.NoError(t, err)
	require.Len(t, cals, 1)
	require.Equal(t, "PERSONAL", cals[0].Type)
	calID := cals[0].ID

	t.Run("update", func(t *testing.T) {
		require.NoError(t, a.UpdateCalendar(ctx, calID, couplesdk.UpdateCalendarRequest{
			Name:  "work",
			Type:  "PERSONAL",
			Color: "#000000",
		}))

		cal, err := a.Calendar(ctx, calID)
		require.NoError(t, err)
		require.Equal(t, "work", cal.Name)
		require.Equal(t, "#000000", cal.Color)
	})

	t.Run("invalid type", func(t *testing.T) {
		err := a.UpdateCalendar(ctx, calID, couplesdk.UpdateCalendarRequest{Type: "SHARED", Color: "#fff"})
		require.ErrorIs(t, err, couplesdk.ErrInvalidRequest)
	})

	t.Run("other account cannot see it", func(t *testing.T) {
		_, err := b.Calendar(ctx, calID)
		require.ErrorIs(t, err, couplesdk.ErrCalendarNotFound)
	})

	t.Run("non numeric id", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/calendars/abc", a.AccessToken(), "")
		requireEnvelope(t, couplesdk.ErrInvalidRequest, status, body)
	})

	t.Run("events show up on home", func(t *testing.T) {
		at := testStart.Add(48 * time.Hour)
		require.NoError(t, a.CreateEvent(ctx, couplesdk.CreateEventRequest{
			CalendarID: calID,
			CategoryID: 3,
			Title:      "dinner",
			EventAt:    at,
		}))

		home, err := a.Home(ctx)
		require.NoError(t, err)
		require.Len(t, home.EventInfos, 1)
		require.Equal(t, calID, home.EventInfos[0].CalendarID)
		require.Equal(t, int64(3), home.EventInfos[0].CategoryID)
		require.True(t, at.Equal(home.EventInfos[0].EventAt))
	})

	t.Run("event without title", func(t *testing.T) {
		err := a.CreateEvent(ctx, couplesdk.CreateEventRequest{CalendarID: calID, EventAt: testStart})
		require.ErrorIs(t, err, couplesdk.ErrInvalidRequest)
	})

	t.Run("event in a foreign calendar", func(t *testing.T) {
		err := b.CreateEvent(ctx, couplesdk.CreateEventRequest{CalendarID: calID, Title: "x", EventAt: testStart})
		require.ErrorIs(t, err, couplesdk.ErrCalendarNotFound)
	})
}

func TestCoupleLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()
	a := ts.signIn(t, "c1")
	b := ts.signIn(t, "c2")

	aID, err := ts.codec.AccountID(a.AccessToken())
	require.NoError(t, err)

	code, err := a.CreateInvitation(ctx)
	require.NoError(t, err)
	require.Len(t, code, 6)

	t.Run("self invitation", func(t *testing.T) {
		_, err := a.LinkCouple(ctx, code)
		require.ErrorIs(t, err, couplesdk.ErrSelfInvitation)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := b.LinkCouple(ctx, "ABC")
		require.ErrorIs(t, err, couplesdk.ErrInvalidRequest)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := b.LinkCouple(ctx, "ZZZZZZ")
		require.ErrorIs(t, err, couplesdk.ErrInvalidInvitationCode)
	})

	linked, err := b.LinkCouple(ctx, code)
	require.NoError(t, err)
	require.Equal(t, aID, linked.PartnerID)
	require.Equal(t, "A", linked.PartnerName)
	require.Equal(t, "2025-03-01", linked.StartDate)

	// The code is single use.
	_, err = b.LinkCouple(ctx, code)
	require.ErrorIs(t, err, couplesdk.ErrInvalidInvitationCode)

	cals, err := a.Calendars(ctx)
	require.NoError(t, err)
	require.Len(t, cals, 2)

	ts.clock.Advance(9 * 24 * time.Hour)
	info, err := a.HomeCouple(ctx)
	require.NoError(t, err)
	require.Equal(t, "A", info.AccountInfo.Name)
	require.NotNil(t, info.CoupleInfo)
	require.Equal(t, "B", info.CoupleInfo.PartnerName)
	require.Equal(t, 10, info.CoupleInfo.DaysCount)

	require.NoError(t, b.UpdateStartDate(ctx, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
	info, err = a.HomeCouple(ctx)
	require.NoError(t, err)
	require.Equal(t, "2025-03-05", info.CoupleInfo.StartDate)
	require.Equal(t, 6, info.CoupleInfo.DaysCount)

	t.Run("bad start date", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPatch, "/api/couples/start-date", a.AccessToken(), `{"startDate":"03/05/2025"}`)
		requireEnvelope(t, couplesdk.ErrInvalidRequest, status, body)
	})

	require.NoError(t, a.Unlink(ctx))

	info, err = b.HomeCouple(ctx)
	require.NoError(t, err)
	require.Nil(t, info.CoupleInfo)

	err = a.Unlink(ctx)
	require.ErrorIs(t, err, couplesdk.ErrNoCouple)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()

	live, err := ts.sdk.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.sdk.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Redis)

	ts.redis.Close()

	resp, err := ts.srv.Client().Get(ts.srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health couplesdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
	require.True(t, strings.HasPrefix(health.Checks.Redis, "error"))
}

func TestMetricsAndDocs(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.signIn(t, "c1")

	resp, err := ts.srv.Client().Get(ts.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, `couple_http_requests_total{method="POST",route="POST /api/auth/sign-in",status="200"} 1`)
	require.Contains(t, text, `couple_auth_operations_total{operation="sign_in",outcome="success"} 1`)

	docs, err := ts.srv.Client().Get(ts.srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer docs.Body.Close()
	require.Equal(t, http.StatusOK, docs.StatusCode)

	var apiDoc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(docs.Body).Decode(&apiDoc))
	require.Contains(t, apiDoc.Paths, "/api/auth/sign-in")
	require.Contains(t, apiDoc.Paths, "/api/couples/start-date")
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.srv.URL+"/api/auth/sign-in", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
