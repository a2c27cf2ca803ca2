package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`

	Timestamp
}

// AuthToken is the opaque bearer credential for a user. A user holds at
// most one token; logging in again returns the existing one.
type AuthToken struct {
	Key    string    `gorm:"primary_key;size:40" json:"key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
