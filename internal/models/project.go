package models

import (
	"github.com/google/uuid"
	"time"
)

// Lifecycle tags a project can carry. Free-form string column, validated at
// the service layer on update.
const (
	ProjectStatusPending    = "pending"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCancelled  = "cancelled"
)

// Project is the collaboration unit. The creator owns it and gates access to
// todos and notes through membership approval.
type Project struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty" gorm:"type:date"`
	Status      string     `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Creator     *User        `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Memberships []Membership `json:"-" gorm:"foreignKey:ProjectID"`
	Todos       []Todo       `json:"todos,omitempty" gorm:"foreignKey:ProjectID"`
	Notes       []Note       `json:"notes,omitempty" gorm:"foreignKey:ProjectID"`
}
