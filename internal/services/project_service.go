package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

const deadlineLayout = "2006-01-02"

// Project lifecycle tags accepted on update.
var validProjectStatuses = map[string]bool{
	models.ProjectStatusPending:    true,
	models.ProjectStatusInProgress: true,
	models.ProjectStatusCompleted:  true,
	models.ProjectStatusOnHold:     true,
	models.ProjectStatusCancelled:  true,
}

// ProjectService implements the project operations of the resource service
// layer. The actor is always passed explicitly; there is no ambient session.
type ProjectService struct {
	projects    domain.ProjectStore
	memberships domain.MembershipStore
}

// NewProjectService creates a new ProjectService with the given stores.
func NewProjectService(projects domain.ProjectStore, memberships domain.MembershipStore) *ProjectService {
	return &ProjectService{projects: projects, memberships: memberships}
}

// CreateProjectInput carries the fields of a project creation request.
type CreateProjectInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

// UpdateProjectInput is an optional-field patch: only present fields
// overwrite stored values. An explicit deadline null clears the deadline.
type UpdateProjectInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Deadline    Optional[string] `json:"deadline"`
	Status      *string          `json:"status"`
}

// JoinRequest is a pending membership request as shown to the project owner.
type JoinRequest struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requested_at"`
}

// ProjectDetail is a project enriched with its direct associations. Pending
// requests are populated only when the caller owns the project.
type ProjectDetail struct {
	models.Project
	Members         []models.UserRef `json:"members"`
	PendingRequests []JoinRequest    `json:"pending_requests,omitempty"`
}

// ListProjects returns the page of projects the actor owns or is an approved
// member of, newest first, with the total count.
func (s *ProjectService) ListProjects(actor *models.User, offset, limit int) ([]models.Project, int64, error) {
	projects, total, err := s.projects.ListVisibleProjects(actor.ID, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list projects")
	}
	return projects, total, nil
}

// CreateProject validates the input and creates the project; the creator
// gets an auto-approved membership row in the same transaction.
func (s *ProjectService) CreateProject(actor *models.User, in CreateProjectInput) (*models.Project, error) {
	ve := domain.ValidationErrors{}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		ve.Add("name", "The name field is required.")
	} else if len(in.Name) > 255 {
		ve.Add("name", "The name may not be greater than 255 characters.")
	}
	deadline := parseDeadline(in.Deadline, ve)

	status := models.ProjectStatusPending
	if in.Status != nil && *in.Status != "" {
		if !validProjectStatuses[*in.Status] {
			ve.Add("status", "The selected status is invalid.")
		} else {
			status = *in.Status
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		Deadline:    deadline,
		Status:      status,
		CreatedBy:   actor.ID,
	}
	ownerMembership := domain.NewOwnerMembership(uuid.Nil, actor.ID, time.Now())
	if err := s.projects.CreateProject(project, ownerMembership); err != nil {
		return nil, errors.Wrap(err, "create project")
	}
	project.Creator = actor
	return project, nil
}

// GetProject returns a project with its members, todos and notes. The owner
// additionally sees pending join requests.
func (s *ProjectService) GetProject(actor *models.User, projectID uuid.UUID) (*ProjectDetail, error) {
	project, err := s.projects.GetProjectDetail(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, errors.Wrap(err, "load project")
	}
	if err := domain.RequireAccess(project, actor.ID, stateFromRows(project.Memberships, actor.ID)); err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: *project, Members: []models.UserRef{}}
	for _, m := range project.Memberships {
		if m.User == nil {
			continue
		}
		switch m.Status {
		case models.MembershipApproved:
			detail.Members = append(detail.Members, m.User.Ref())
		case models.MembershipPending:
			if domain.IsOwner(project, actor.ID) {
				detail.PendingRequests = append(detail.PendingRequests, JoinRequest{
					ID:          m.User.ID,
					Name:        m.User.Name,
					Email:       m.User.Email,
					RequestedAt: m.RequestedAt,
				})
			}
		}
	}
	return detail, nil
}

// UpdateProject applies an owner-only optional-field patch to a project.
func (s *ProjectService) UpdateProject(actor *models.User, projectID uuid.UUID, in UpdateProjectInput) (*models.Project, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(project, actor.ID); err != nil {
		return nil, err
	}

	ve := domain.ValidationErrors{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			ve.Add("name", "The name field is required.")
		} else if len(name) > 255 {
			ve.Add("name", "The name may not be greater than 255 characters.")
		} else {
			project.Name = name
		}
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Deadline.Set {
		if in.Deadline.Value == nil {
			project.Deadline = nil
		} else if deadline := parseDeadline(in.Deadline.Value, ve); deadline != nil {
			project.Deadline = deadline
		}
	}
	if in.Status != nil {
		if !validProjectStatuses[*in.Status] {
			ve.Add("status", "The selected status is invalid.")
		} else {
			project.Status = *in.Status
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if err := s.projects.UpdateProject(project); err != nil {
		return nil, errors.Wrap(err, "update project")
	}
	return project, nil
}

// DeleteProject removes a project and all of its memberships, todos and
// notes. Owner only.
func (s *ProjectService) DeleteProject(actor *models.User, projectID uuid.UUID) error {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(project, actor.ID); err != nil {
		return err
	}
	return errors.Wrap(s.projects.DeleteProject(projectID), "delete project")
}

// parseDeadline validates an optional deadline string. The date may not be in
// the past.
func parseDeadline(raw *string, ve domain.ValidationErrors) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	deadline, err := time.Parse(deadlineLayout, *raw)
	if err != nil {
		ve.Add("deadline", "The deadline is not a valid date.")
		return nil
	}
	today := time.Now().Truncate(24 * time.Hour)
	if deadline.Before(today) {
		ve.Add("deadline", "The deadline must be a date after or equal to today.")
		return nil
	}
	return &deadline
}

// stateFromRows derives a user's membership state from preloaded rows,
// avoiding a second lookup on the detail path.
func stateFromRows(rows []models.Membership, userID uuid.UUID) domain.MembershipState {
	for i := range rows {
		if rows[i].UserID == userID {
			return domain.StateOf(&rows[i])
		}
	}
	return domain.StateAbsent
}
