// Package models defines the server-side domain records and their public
// JSON views. Records are immutable values: updates build a new record and
// hand it to the store as a single replace call.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string // optional, "" = unset
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the public shape of a user. It deliberately has no field for
// the password hash.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the public projection of u.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch carries a self-update. Empty fields leave the current value
// unchanged, so profile fields cannot be cleared through this API.
// PasswordHash, when set, is already hashed by the caller.
type UserPatch struct {
	Email        string
	FullName     string
	PasswordHash string
}

// Apply returns a copy of u with the patch applied and the update
// timestamp refreshed.
func (p UserPatch) Apply(u User, now time.Time) User {
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.FullName != "" {
		u.FullName = p.FullName
	}
	if p.PasswordHash != "" {
		u.PasswordHash = p.PasswordHash
	}
	u.UpdatedAt = now
	return u
}
