package services

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

// resolveProject loads a project, mapping a missing row to the domain
// not-found error.
func resolveProject(store domain.ProjectStore, id uuid.UUID) (*models.Project, error) {
	project, err := store.GetProject(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, errors.Wrap(err, "load project")
	}
	return project, nil
}

// membershipState reads the state-machine view of a user's membership in a
// project. A missing row is the absent state, not an error.
func membershipState(store domain.MembershipStore, projectID, userID uuid.UUID) (domain.MembershipState, error) {
	m, err := store.GetMembership(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StateAbsent, nil
		}
		return domain.StateAbsent, errors.Wrap(err, "load membership")
	}
	return domain.StateOf(m), nil
}

// requireMember combines the existence and authorization guard for
// member-gated actions on a project's sub-entities.
func requireMember(memberships domain.MembershipStore, project *models.Project, actor *models.User) error {
	state, err := membershipState(memberships, project.ID, actor.ID)
	if err != nil {
		return err
	}
	return domain.RequireAccess(project, actor.ID, state)
}

// validateAssignee applies the assignee constraint: the supplied user must be
// the project owner or an approved member. Violations are reported on the
// given field of a validation error, never as an authorization denial.
func validateAssignee(memberships domain.MembershipStore, project *models.Project, assigneeID uuid.UUID, ve domain.ValidationErrors) error {
	state, err := membershipState(memberships, project.ID, assigneeID)
	if err != nil {
		return err
	}
	if !domain.ValidAssignee(project, assigneeID, state) {
		ve.Add("assignee_id", "Assignee must be an approved member or the creator of the project.")
	}
	return nil
}
