package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrUnsupported  = errors.New("jwtx: unsupported token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")

	// Policy mismatches are reported as invalid tokens.
	ErrIssuer       = fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	ErrAudience     = fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	ErrInvalidClaim = fmt.Errorf("%w: invalid claims", ErrInvalidToken)
)

// IsTokenError reports whether err is one of the token failure kinds
// produced by this package.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrUnsupported) ||
		errors.Is(err, ErrInvalidSig) ||
		errors.Is(err, ErrExpired)
}

// classify maps a golang-jwt parse error onto one of our kinds, keeping the
// original message for logs.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, ErrUnsupported), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = ErrUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		kind = ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		kind = ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		kind = ErrAudience
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		kind = ErrInvalidClaim
	default:
		kind = ErrInvalidToken
	}
	return fmt.Errorf("%w: %v", kind, err)
}
