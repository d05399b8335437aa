package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Both can be overridden through Config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Refresh tokens live for days while access tokens live for minutes.
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// Claims are the claims carried by both access and refresh tokens. Access
// tokens carry an audience; refresh tokens carry a jti instead.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the account role at issue time ("USER", "ADMIN", ...).
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds the claims of an access token.
func NewAccessClaims(accountID int64, role, issuer, audience string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
}

// NewRefreshClaims builds the claims of a refresh token. The jti makes
// every refresh token unique even when issued twice within one second.
func NewRefreshClaims(accountID int64, role, issuer, jti string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		Role: role,
	}
}

// NewJTI returns a random identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// AccountID parses the subject as a numeric account id.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidClaim
	}
	return id, nil
}
