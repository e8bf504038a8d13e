// Package entity defines the stored-record shape for the users feature.
package entity

import "games_backend/internal/platform/storage"

// User is the canonical stored record for a user. Email is the uniqueness
// key enforced by the usecase layer. Wishlist holds bare game ids, not
// embedded games; resolution happens when the record is projected outward.
type User struct {
	// ID is the opaque identifier assigned by the storage backend.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	FirstName string `gorm:"size:50" json:"firstName"`
	LastName  string `gorm:"size:50" json:"lastName"`
	Email     string `gorm:"size:50;index" json:"email"`

	// Wishlist is stored as a JSON-serialized ordered list of game ids.
	Wishlist []string `gorm:"serializer:json" json:"wishlist"`

	// Password holds the bcrypt hash. It never appears in any outbound
	// projection.
	Password string `gorm:"size:100" json:"-"`
}

// TableName sets the gorm table for User records.
func (User) TableName() string { return "users" }

// GetID returns the record identifier.
func (u *User) GetID() string { return u.ID }

// SetID assigns the record identifier.
func (u *User) SetID(id string) { u.ID = id }

// Merge applies a partial field set onto the record. Field names follow the
// payload contract; unknown entries are ignored and ID is never touched.
func (u *User) Merge(fields storage.Fields) {
	if v, ok := fields["firstName"].(string); ok {
		u.FirstName = v
	}
	if v, ok := fields["lastName"].(string); ok {
		u.LastName = v
	}
	if v, ok := fields["email"].(string); ok {
		u.Email = v
	}
	if v, ok := fields["wishlist"].([]string); ok {
		u.Wishlist = v
	}
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
}
