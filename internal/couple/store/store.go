package store

import (
	"context"
	"errors"
	"time"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrTokenAlreadyExpired is returned when a refresh token would be stored
	// with no time left to live.
	ErrTokenAlreadyExpired = errors.New("store: token already expired")
)

// Store is the relational data access root. Sub-repositories are exposed as
// methods so a Tx can hand out the same repositories bound to a transaction.
type Store interface {
	Accounts() Accounts
	AccountProviders() AccountProviders
	Calendars() Calendars
	Events() Events
	Couples() Couples

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a and returns the new id.
	CreateAccount(ctx context.Context, a domain.Account) (int64, error)

	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)

	// UpdateStatus overwrites the three status flags.
	UpdateStatus(ctx context.Context, id int64, deleted, banned, withdrawn bool) error
}

type AccountProviders interface {
	// CreateAccountProvider fails with ErrAlreadyExists when the external
	// identity is already linked.
	CreateAccountProvider(ctx context.Context, p domain.AccountProvider) (int64, error)

	GetByProviderUserID(ctx context.Context, provider, providerUserID string) (domain.AccountProvider, error)
}

type Calendars interface {
	CreateCalendar(ctx context.Context, c domain.Calendar) (int64, error)
	GetCalendarByID(ctx context.Context, id int64) (domain.Calendar, error)

	// ListCalendarsForAccount returns calendars the account owns or is an
	// ACTIVE member of, oldest first.
	ListCalendarsForAccount(ctx context.Context, accountID int64) ([]domain.Calendar, error)

	// UpdateCalendar rewrites name, type, color and description.
	UpdateCalendar(ctx context.Context, c domain.Calendar) error

	AddMember(ctx context.Context, m domain.CalendarMember) error

	// HasAccess reports whether the account owns or is an ACTIVE member of
	// the calendar.
	HasAccess(ctx context.Context, calendarID, accountID int64) (bool, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) (int64, error)

	// ListEventsByAccount returns the account's events ordered by event time.
	ListEventsByAccount(ctx context.Context, accountID int64) ([]domain.Event, error)
}

type Couples interface {
	CreateCouple(ctx context.Context, c domain.Couple) (int64, error)

	// GetCoupleByAccountID finds the couple the account belongs to on either side.
	GetCoupleByAccountID(ctx context.Context, accountID int64) (domain.Couple, error)

	ExistsByAccountID(ctx context.Context, accountID int64) (bool, error)
	UpdateStartDate(ctx context.Context, coupleID int64, startDate time.Time) error
	DeleteCouple(ctx context.Context, coupleID int64) error
}
