package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser        Role = "USER"
	RoleIllustrator Role = "ILLUSTRATOR"
	RoleArtist      Role = "ARTIST"
	RoleAdmin       Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleIllustrator, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

// Account is a local account. Email is not unique: Kakao sign-ins share a
// placeholder address.
type Account struct {
	ID        int64
	Email     string
	Name      string
	Role      Role
	Provider  string // provider used for the first sign-in
	Deleted   bool
	Banned    bool
	Withdrawn bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountProvider links an account to an external identity.
type AccountProvider struct {
	ID             int64
	AccountID      int64
	Provider       string // "GOOGLE", "KAKAO"
	ProviderUserID string
	CreatedAt      time.Time
}
