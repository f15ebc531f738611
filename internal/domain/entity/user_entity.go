package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	DateOfBirth  *time.Time
	Gender       *string
	HeightCm     *float64
	WeightKg     *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserWithTotals is a user row joined with its workout rollup, used by the admin panel.
type UserWithTotals struct {
	User
	TotalWorkouts int64
	TotalCalories int64
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
