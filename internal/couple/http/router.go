package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/calendar-couple/couple/api/couple" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is a backing store that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	cache Pinger

	// Metrics instruments every route; nil disables instrumentation.
	Metrics *httpx.HTTPMetrics
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer

	AuthService       *service.AuthService
	CalendarService   *service.CalendarService
	EventService      *service.EventService
	InvitationService *service.InvitationService
	CoupleService     *service.CoupleService
	HomeService       *service.HomeService
}

func NewRouter(
	allowedOrigins []string,
	buildVersion string,
	st store.Store,
	cache Pinger,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        cache,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		httpx.CORS(allowedOrigins),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. Services must be set beforehand.
func (r *Router) ApplyRoutes() {
	authn := &RequestAuthenticator{Auth: r.AuthService}
	r.middlewares = append(r.middlewares, authn.Middleware)

	r.registerAuth()
	r.registerCalendars()
	r.registerEvents()
	r.registerCouples()
	r.registerHome()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Couple Calendar API
//	@version		0.1.0
//	@description	Shared calendar backend for couples. Accounts sign in through Google or Kakao and receive
//	@description	HS256 signed access and refresh tokens.
//
//	@contact.name				Couple Calendar Team
//	@contact.url				https://github.com/calendar-couple/couple
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with its route middleware, instrumented
// with the pattern as the route label.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, r.Metrics.Instrument(pattern, httpx.Chain(h, mws...)))
}

// secured is the route middleware shared by authenticated endpoints.
func secured(limit httpx.RateLimitConfig) []httpx.Middleware {
	return []httpx.Middleware{
		httpx.RequireAuth(couplesdk.ErrUnauthorized),
		httpx.RateLimitByAccount(limit),
	}
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Sign-in and refresh are unauthenticated; limit by IP against brute force.
	r.handle("POST /api/auth/sign-in", http.HandlerFunc(h.HandleSignIn),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("POST /api/auth/refresh", http.HandlerFunc(h.HandleRefresh),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("DELETE /api/auth/logout", http.HandlerFunc(h.HandleLogout),
		secured(httpx.ModerateLimit)...,
	)
}

func (r *Router) registerCalendars() {
	h := &CalendarsHandler{CalendarService: r.CalendarService}

	r.handle("GET /api/calendars", http.HandlerFunc(h.HandleList), secured(httpx.LenientLimit)...)
	r.handle("GET /api/calendars/{calendarId}", http.HandlerFunc(h.HandleGet), secured(httpx.LenientLimit)...)
	r.handle("PUT /api/calendars/{calendarId}", http.HandlerFunc(h.HandleUpdate), secured(httpx.ModerateLimit)...)
}

func (r *Router) registerEvents() {
	h := &EventsHandler{EventService: r.EventService}

	r.handle("POST /api/events", http.HandlerFunc(h.HandleCreate), secured(httpx.ModerateLimit)...)
}

func (r *Router) registerCouples() {
	h := &CouplesHandler{
		InvitationService: r.InvitationService,
		CoupleService:     r.CoupleService,
	}

	r.handle("POST /api/couple/invitations", http.HandlerFunc(h.HandleCreateInvitation), secured(httpx.ModerateLimit)...)

	// Invitation codes are short; keep guessing expensive.
	r.handle("POST /api/couples", http.HandlerFunc(h.HandleLink), secured(httpx.StrictLimit)...)
	r.handle("PATCH /api/couples/start-date", http.HandlerFunc(h.HandleUpdateStartDate), secured(httpx.ModerateLimit)...)
	r.handle("DELETE /api/couples", http.HandlerFunc(h.HandleUnlink), secured(httpx.ModerateLimit)...)
}

func (r *Router) registerHome() {
	h := &HomeHandler{HomeService: r.HomeService}

	r.handle("GET /api/home", http.HandlerFunc(h.HandleHome), secured(httpx.LenientLimit)...)
	r.handle("GET /api/home/couples", http.HandlerFunc(h.HandleCouple), secured(httpx.LenientLimit)...)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)

	if r.Gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{}))
	}
}
