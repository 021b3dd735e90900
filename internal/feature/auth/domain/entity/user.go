// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a dashboard account.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is unique across all users and stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Accounts created through the identity
	// provider have an empty hash and cannot sign in with a password.
	Password string `gorm:"size:255;not null"`

	// ExternalID is the identity provider subject, if any.
	ExternalID string `gorm:"size:255;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
