package entity

import (
	"time"
)

// Contact belongs to exactly one user. Every read and write goes through
// the owning user's id; rows cascade-delete with the owner.
type Contact struct {
	ID          int64
	Name        string
	Surname     string
	PhoneNumber string
	Email       string
	Birthday    time.Time
	UserID      int64
}
