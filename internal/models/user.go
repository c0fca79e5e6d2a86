package models

import "time"

// User is a registered player. Names are stored uppercase. Wins and Total
// count decided games only; cancellations recorded against a user still
// increment Total through RecordLoss, by the caller's choice.
type User struct {
	Key          string    `json:"key,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Created      time.Time `json:"created"`
	Wins         int       `json:"wins"`
	Total        int       `json:"total"`
}

// RecordWin counts a won game. Returns u for chaining into a save.
func (u *User) RecordWin() *User {
	u.Wins++
	u.Total++
	return u
}

// RecordLoss counts a lost game. Returns u for chaining into a save.
func (u *User) RecordLoss() *User {
	u.Total++
	return u
}

// WinPercentage is the floored integer win rate, zero when the user has no
// decided games.
func (u *User) WinPercentage() int {
	if u.Wins <= 0 || u.Total <= 0 {
		return 0
	}
	return u.Wins * 100 / u.Total
}

// Sanitize clears fields that must not appear in API responses. Returns u for
// chaining.
func (u *User) Sanitize() *User {
	u.PasswordHash = ""
	return u
}
