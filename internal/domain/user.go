package domain

import "time"

// User represents a confirmed account. Users are only ever created by
// promoting a TempUser after its verification token has been resolved.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Confirmed    bool
	CreatedAt    time.Time
}

// TempUser is a pending registration awaiting email verification. It is
// keyed by a single-use token and carries a snapshot of the User fields
// to be promoted, plus an expiration after which it is treated as absent.
type TempUser struct {
	ID           int64
	Token        string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Expired reports whether the temp user's TTL has passed at the given time.
func (t *TempUser) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// User returns the confirmed User record this temp user promotes into.
func (t *TempUser) User() *User {
	return &User{
		Email:        t.Email,
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		PasswordHash: t.PasswordHash,
		Confirmed:    true,
	}
}
