package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/jwtx"
)

// Metrics counts authentication outcomes. A nil *Metrics records nothing.
type Metrics struct {
	ops *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	ops, err := httpx.RegisterOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "couple",
		Subsystem: "auth",
		Name:      "operations_total",
		Help:      "Authentication operations by outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}
	return &Metrics{ops: ops}, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, jwtx.ErrExpired):
		return "expired"
	case errors.Is(err, ErrRevokedToken):
		return "revoked"
	case jwtx.IsTokenError(err):
		return "invalid_token"
	case errors.Is(err, oauth.ErrIdentityProvider), errors.Is(err, oauth.ErrUnknownProvider):
		return "provider_error"
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAccountLocked),
		errors.Is(err, ErrAccountExpired),
		errors.Is(err, ErrCredentialsExpired),
		errors.Is(err, ErrAccountDisabled):
		return "account_rejected"
	default:
		return "error"
	}
}
