// Package models defines the typed records shared by repositories and
// services.
package models

import "time"

// User is an account known to the user directory. Roles are loaded from the
// user_role child table together with the user.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	Roles        []string
	CreatedOn    time.Time
	ModifiedOn   time.Time
}

// HasRole reports whether the user has been granted the given role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// UserHistoryEntry is an audit record of a change made to a user account.
type UserHistoryEntry struct {
	ID         int64
	UserID     int64
	EditorName string
	Message    string
	CreatedOn  time.Time
}
