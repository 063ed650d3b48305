package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategoryColor = "#607D8B"
	DefaultCategoryIcon  = "📦"
)

// Ownership says who a category belongs to: a single user, or nobody, in
// which case it is a shared default visible to every tenant.
type Ownership struct {
	owner  uuid.UUID
	shared bool
}

func OwnedBy(userID uuid.UUID) Ownership {
	return Ownership{owner: userID}
}

func Shared() Ownership {
	return Ownership{shared: true}
}

func (o Ownership) IsShared() bool {
	return o.shared
}

// Owner returns the owning user; ok is false for shared rows.
func (o Ownership) Owner() (userID uuid.UUID, ok bool) {
	if o.shared {
		return uuid.Nil, false
	}
	return o.owner, true
}

// OwnerPtr is the nullable form stored in categories.user_id.
func (o Ownership) OwnerPtr() *uuid.UUID {
	if o.shared {
		return nil
	}
	id := o.owner
	return &id
}

func OwnershipFromPtr(userID *uuid.UUID) Ownership {
	if userID == nil {
		return Shared()
	}
	return OwnedBy(*userID)
}

func (o Ownership) VisibleTo(userID uuid.UUID) bool {
	return o.shared || o.owner == userID
}

func (o Ownership) MutableBy(userID uuid.UUID) bool {
	return !o.shared && o.owner == userID
}

type Category struct {
	ID          uuid.UUID
	Ownership   Ownership
	Name        string
	Description *string
	Color       string
	Icon        string
	CreatedAt   time.Time
}

func (c *Category) IsDefault() bool {
	return c.Ownership.IsShared()
}
