package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the unit of authorization. Username is unique case-insensitively.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	CurrentLedgerID *int32     `json:"currentLedgerId,omitempty"`
	DarkMode        bool       `json:"darkMode"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Preferences holds the user-editable display settings.
type Preferences struct {
	DarkMode        bool   `json:"darkMode"`
	CurrentLedgerID *int32 `json:"currentLedgerId,omitempty"`
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByUsername(username string) (*User, error)
	UpdatePreferences(id uuid.UUID, prefs Preferences) (*User, error)
}
