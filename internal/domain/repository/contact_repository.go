package repository

import (
	"context"

	"contacts-api/internal/domain/entity"
)

// ContactRepository defines owner-scoped contact persistence. The ownerID
// argument is a mandatory predicate on every operation; no call can reach a
// contact belonging to another user.
type ContactRepository interface {
	List(ctx context.Context, ownerID int64, skip, limit int) ([]entity.Contact, error)
	FindByName(ctx context.Context, ownerID int64, skip, limit int, name string) ([]entity.Contact, error)
	FindBySurname(ctx context.Context, ownerID int64, skip, limit int, surname string) ([]entity.Contact, error)
	FindByEmail(ctx context.Context, ownerID int64, skip, limit int, email string) ([]entity.Contact, error)
	GetByID(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error)
	Create(ctx context.Context, c *entity.Contact) error
	// Update overwrites all mutable fields of the contact matching
	// (contactID, ownerID) and returns the post-update row.
	Update(ctx context.Context, ownerID, contactID int64, c *entity.Contact) (*entity.Contact, error)
	// Remove deletes the contact matching (contactID, ownerID) and returns
	// the pre-deletion snapshot.
	Remove(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error)
}
