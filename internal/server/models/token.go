package models

import "time"

// RevokedToken is a row of the append-only token denylist. Rows are created
// on logout and never updated or deleted.
type RevokedToken struct {
	ID        int64
	Token     string
	CreatedOn time.Time
}
