package models

import (
	"github.com/google/uuid"
	"time"
)

// Note is a free-form text entry inside a project.
type Note struct {
	ID         uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID  uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Title      string     `json:"title"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	CreatedBy  uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Creator  *User    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Project  *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
