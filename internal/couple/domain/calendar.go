package domain

import "time"

type CalendarType string

const (
	CalendarPersonal CalendarType = "PERSONAL"
	CalendarCouple   CalendarType = "COUPLE"
)

// ParseCalendarType accepts the two known calendar types.
func ParseCalendarType(s string) (CalendarType, bool) {
	switch t := CalendarType(s); t {
	case CalendarPersonal, CalendarCouple:
		return t, true
	}
	return "", false
}

// Defaults for provisioned calendars.
const (
	DefaultPersonalColor       = "#3788D8"
	DefaultCoupleColor         = "#ed3b3b"
	DefaultCalendarDescription = "기본 제공되는 캘린더입니다"
)

type Calendar struct {
	ID          int64
	OwnerID     int64
	Name        string
	Type        CalendarType
	Color       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MemberRole string

const (
	MemberOwner  MemberRole = "OWNER"
	MemberMember MemberRole = "MEMBER"
)

type MemberStatus string

const (
	MemberPending MemberStatus = "PENDING"
	MemberActive  MemberStatus = "ACTIVE"
)

// CalendarMember grants an account access to a calendar.
type CalendarMember struct {
	CalendarID int64
	AccountID  int64
	Role       MemberRole
	Status     MemberStatus
	CreatedAt  time.Time
}

// Event is a single entry on a calendar.
type Event struct {
	ID          int64
	AccountID   int64
	CalendarID  int64
	CategoryID  int64
	Title       string
	Description string
	EventAt     time.Time
	CreatedAt   time.Time
}
