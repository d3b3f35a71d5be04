package models

import (
	"time"
)

// Account defines the account model based on the 'accounts' table
type Account struct {
	ID           int64     `json:"id" db:"id" example:"1"`                           // Unique identifier for the account
	Username     string    `json:"username" db:"username" example:"jdoe"`            // Login name, globally unique
	PasswordHash string    `json:"-" db:"password_hash"`                             // Salted bcrypt hash (never serialized)
	Role         Role      `json:"role" db:"role" example:"teacher"`                 // Account role (admin, teacher or student)
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
}
