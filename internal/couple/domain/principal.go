package domain

// Principal is the request-scoped view of the calling account. It is derived
// from the account flags once per request and never persisted.
type Principal struct {
	AccountID int64
	Role      Role

	Locked             bool
	Expired            bool
	CredentialsExpired bool
	Enabled            bool
}

// NewPrincipal derives the status predicates from the account flags. Account
// and credential expiry are not modelled and are always false.
func NewPrincipal(a Account) Principal {
	return Principal{
		AccountID:          a.ID,
		Role:               a.Role,
		Locked:             a.Banned,
		Expired:            false,
		CredentialsExpired: false,
		Enabled:            !a.Deleted && !a.Withdrawn,
	}
}
