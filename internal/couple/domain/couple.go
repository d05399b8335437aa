package domain

import "time"

// Couple pairs two accounts. Account1 is the inviter, Account2 accepted the
// invitation. StartDate is a calendar date at midnight UTC.
type Couple struct {
	ID         int64
	Account1ID int64
	Account2ID int64
	StartDate  time.Time
	CreatedAt  time.Time
}

// PartnerID returns the other member of the couple.
func (c Couple) PartnerID(accountID int64) int64 {
	if c.Account1ID == accountID {
		return c.Account2ID
	}
	return c.Account1ID
}

// LinkedCouple is the result of accepting an invitation.
type LinkedCouple struct {
	CoupleID    int64
	PartnerID   int64
	PartnerName string
	StartDate   time.Time
	LinkedAt    time.Time
}

// CoupleSummary is the home screen view of a couple.
type CoupleSummary struct {
	PartnerID   int64
	PartnerName string
	StartDate   time.Time
	DaysCount   int
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysTogether counts days from start to today, both inclusive.
func DaysTogether(start, today time.Time) int {
	return int(Date(today).Sub(Date(start)).Hours()/24) + 1
}
