package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleDriver Role = "DRIVER"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

// User is a marketplace account: a driver booking spots, a spot owner, or
// an operator. Auth issuance lives outside this service; the record exists
// for seeding, FK joins and role checks.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'DRIVER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleDriver), string(RoleOwner), string(RoleAdmin):
		return true
	default:
		return false
	}
}
