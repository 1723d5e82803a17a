package model

import "time"

// User represents a dashboard account. Only admins pass the authorization
// gate; regular accounts can authenticate but see no order data.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}
