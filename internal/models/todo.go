package models

import (
	"github.com/google/uuid"
	"time"
)

// Todo is a task inside a project. The assignee, when set, must be an
// approved member or the project owner.
type Todo struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Creator  *User    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Project  *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
