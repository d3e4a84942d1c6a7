package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plaintext.
// RefreshToken is the single active refresh token for the account;
// empty means no live session.
type User struct {
	ID           int64
	Username     string
	Email        string
	Password     string
	Avatar       string
	RefreshToken string
	Confirmed    bool
	CreatedAt    time.Time
}
