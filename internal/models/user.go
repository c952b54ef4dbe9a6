package models

import (
	"encoding/json"
	"time"
)

// Roles a user account can hold. Accounts without an explicit role
// are professors.
const (
	RoleAdmin     = "ADMIN"
	RoleProfessor = "PROFESSOR"
)

// User represents a teacher or admin account.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"default:'PROFESSOR'"`
	Photo     *string   `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsValidRole reports whether role is one of the accepted role values.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleProfessor
}

// CreateUserInput carries the payload for creating a user.
type CreateUserInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Photo    *string `json:"photo"`
}

// UpdateUserInput carries a partial update. Nil pointers mean the field
// was not provided and must be left untouched. Photo is kept raw so an
// explicit `"photo": null` (clear the photo) can be told apart from an
// absent key.
type UpdateUserInput struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Password *string         `json:"password"`
	Role     *string         `json:"role"`
	Photo    json.RawMessage `json:"photo"`
}

// DeletedUser is the confirmation snapshot returned after a delete.
type DeletedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
