package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. The password hash never leaves the API.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRef is the slimmed identity embedded in project/todo/note responses.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// Ref returns the embeddable identity for this user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}
