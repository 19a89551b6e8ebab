package domain

import (
	"github.com/google/uuid"

	"collab-service/internal/models"
)

// UserStore describes user lookups needed by auth and assignee validation.
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	EmailTaken(email string) (bool, error)
}

// ProjectStore describes project persistence. CreateProject must attach the
// creator's approved membership in the same transaction; DeleteProject must
// cascade to memberships, todos and notes atomically.
type ProjectStore interface {
	CreateProject(project *models.Project, ownerMembership *models.Membership) error
	GetProject(id uuid.UUID) (*models.Project, error)
	GetProjectDetail(id uuid.UUID) (*models.Project, error)
	ListVisibleProjects(userID uuid.UUID, offset, limit int) ([]models.Project, int64, error)
	UpdateProject(project *models.Project) error
	DeleteProject(id uuid.UUID) error
}

// MembershipStore is the durable (project, user) → membership mapping.
// Creating a duplicate pair must fail with the storage uniqueness constraint.
type MembershipStore interface {
	GetMembership(projectID, userID uuid.UUID) (*models.Membership, error)
	CreateMembership(m *models.Membership) error
	// ResetToPending moves a rejected row back to pending, clearing the
	// response fields and refreshing requested_at.
	ResetToPending(projectID, userID uuid.UUID) error
	// Respond conditionally moves a pending row to the given status. It
	// reports false when no pending row existed at write time.
	Respond(projectID, userID uuid.UUID, status models.MembershipStatus, responderID uuid.UUID) (bool, error)
	DeleteMembership(projectID, userID uuid.UUID) error
	ListMembers(projectID uuid.UUID, status models.MembershipStatus) ([]models.Membership, error)
}

// TodoStore describes todo persistence scoped to a project.
type TodoStore interface {
	CreateTodo(todo *models.Todo) error
	GetTodo(id uuid.UUID) (*models.Todo, error)
	ListTodos(projectID uuid.UUID, offset, limit int) ([]models.Todo, int64, error)
	UpdateTodo(todo *models.Todo) error
	DeleteTodo(id uuid.UUID) error
}

// NoteStore describes note persistence scoped to a project.
type NoteStore interface {
	CreateNote(note *models.Note) error
	GetNote(id uuid.UUID) (*models.Note, error)
	ListNotes(projectID uuid.UUID, offset, limit int) ([]models.Note, int64, error)
	UpdateNote(note *models.Note) error
	DeleteNote(id uuid.UUID) error
}
