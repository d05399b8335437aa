package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the minimum HS256 key size in bytes.
const MinSecretSize = 32

// Config holds the process-wide token settings. It is read-only after the
// Codec is built.
type Config struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Codec issues and verifies HS256 signed access and refresh tokens. The
// injected clock is the only time source for issuing and for expiry checks.
type Codec struct {
	cfg    Config
	clock  clock.Clock
	newJTI func() string
}

// DecodeSecret decodes a base64 (standard or URL alphabet) signing secret.
func DecodeSecret(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("jwtx: empty secret")
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(encoded); err == nil {
			return b, nil
		}
	}
	return nil, errors.New("jwtx: secret is not valid base64")
}

// NewCodec validates cfg and returns a Codec. Zero TTLs fall back to the
// package defaults.
func NewCodec(cfg Config, c clock.Clock) (*Codec, error) {
	if len(cfg.Secret) < MinSecretSize {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretSize, len(cfg.Secret))
	}
	if cfg.Issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("jwtx: audience is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTokenTTL
	}
	if c == nil {
		c = clock.Real()
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	cfg.Secret = secret

	return &Codec{cfg: cfg, clock: c, newJTI: NewJTI}, nil
}

// AccessTTL returns the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.cfg.AccessTTL }

// IssueAccessToken signs an access token for the account.
func (c *Codec) IssueAccessToken(accountID int64, role string) (string, error) {
	claims := NewAccessClaims(accountID, role, c.cfg.Issuer, c.cfg.Audience, c.clock.Now(), c.cfg.AccessTTL)
	return c.Sign(claims)
}

// IssueRefreshToken signs a refresh token and returns its expiry instant.
func (c *Codec) IssueRefreshToken(accountID int64, role string) (string, time.Time, error) {
	claims := NewRefreshClaims(accountID, role, c.cfg.Issuer, c.newJTI(), c.clock.Now(), c.cfg.RefreshTTL)

	token, err := c.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// Sign encodes and signs arbitrary claims with the shared secret.
func (c *Codec) Sign(claims Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, nil
}

// VerifyAccessToken runs the full policy check: signature, issuer, audience
// and expiry.
func (c *Codec) VerifyAccessToken(token string) error {
	_, err := c.parse(token,
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithAudience(c.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	return err
}

// VerifyRefreshToken is VerifyAccessToken without the audience check.
func (c *Codec) VerifyRefreshToken(token string) error {
	_, err := c.parse(token,
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	return err
}

// Parse performs the basic parse: structure, signature and expiry only.
// Issuer and audience are NOT checked, so callers must run one of the
// Verify methods before trusting the result.
func (c *Codec) Parse(token string) (*Claims, error) {
	return c.parse(token)
}

// AccountID returns the subject of a token. Basic parse only.
func (c *Codec) AccountID(token string) (int64, error) {
	claims, err := c.Parse(token)
	if err != nil {
		return 0, err
	}
	return claims.AccountID()
}

// Role returns the role claim of a token. Basic parse only.
func (c *Codec) Role(token string) (string, error) {
	claims, err := c.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// RemainingTTL returns how long the token stays valid, measured with the
// injected clock. It fails with ErrExpired once nothing is left.
func (c *Codec) RemainingTTL(token string) (time.Duration, error) {
	claims, err := c.Parse(token)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return 0, ErrInvalidClaim
	}

	ttl := claims.ExpiresAt.Sub(c.clock.Now())
	if ttl <= 0 {
		return 0, ErrExpired
	}
	return ttl, nil
}

func (c *Codec) parse(token string, opts ...jwt.ParserOption) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts = append(opts, jwt.WithTimeFunc(c.clock.Now))
	parser := jwt.NewParser(opts...)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// Only HS256 is issued; anything else is a token we do not support.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%w: alg %v", ErrUnsupported, t.Header["alg"])
		}
		return c.cfg.Secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return claims, nil
}
