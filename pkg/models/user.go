package models

import (
	"time"

	"github.com/thejas-1999/Assets-Management/pkg/roles"
)

type User struct {
	ID           int        `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Designation  string     `json:"designation" db:"designation"`
	Phone        string     `json:"phone" db:"phone"`
	Role         roles.Role `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type CreateUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Designation *string `json:"designation"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
}

// UserChanges carries only the columns the update should touch.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Designation  *string
	Phone        *string
	Role         *string
}

func (c *UserChanges) HasChanges() bool {
	return c.Name != nil || c.Email != nil || c.PasswordHash != nil ||
		c.Designation != nil || c.Phone != nil || c.Role != nil
}
