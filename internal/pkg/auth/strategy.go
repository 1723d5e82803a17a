package auth

import "time"

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes a Strategy; TTL bounds token validity.
type Options struct {
	TTL time.Duration
}
