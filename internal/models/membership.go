package models

import (
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is the approval state of a join request.
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipApproved MembershipStatus = "approved"
	MembershipRejected MembershipStatus = "rejected"
)

// Membership is the per-user approval record scoping access to a project.
// The composite primary key doubles as the storage-level uniqueness
// constraint: concurrent joins for the same (project, user) pair cannot both
// insert a row.
type Membership struct {
	ProjectID   uuid.UUID        `json:"project_id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID        `json:"user_id" gorm:"primaryKey;type:uuid"`
	Status      MembershipStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	RequestedAt time.Time        `json:"requested_at" gorm:"not null"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	ApprovedBy  *uuid.UUID       `json:"approved_by,omitempty" gorm:"type:uuid"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
