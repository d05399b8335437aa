package domain

import "time"

// TokenPair is what sign-in and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenRecord is the single live refresh token of an account.
type RefreshTokenRecord struct {
	AccountID int64
	Token     string
	ExpiresAt time.Time
}
