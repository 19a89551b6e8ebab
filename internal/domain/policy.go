// Package domain holds the membership workflow rules: the state machine for
// join/approve/reject/leave transitions and the access policy derived from
// membership state. Everything here is pure; persistence and transport live
// in the surrounding layers.
package domain

import (
	"github.com/google/uuid"

	"collab-service/internal/models"
)

// IsOwner reports whether the actor created the project.
func IsOwner(project *models.Project, actorID uuid.UUID) bool {
	return project.CreatedBy == actorID
}

// CanAccess is the uniform member gate: the project owner and approved
// members may act on the project and its todos and notes; everyone else is
// denied regardless of entity ownership.
func CanAccess(project *models.Project, actorID uuid.UUID, actorState MembershipState) bool {
	if IsOwner(project, actorID) {
		return true
	}
	return actorState == StateApproved
}

// RequireOwner guards owner-only actions (project update/delete, listing and
// responding to join requests).
func RequireOwner(project *models.Project, actorID uuid.UUID) error {
	if !IsOwner(project, actorID) {
		return ErrNotOwner
	}
	return nil
}

// RequireAccess guards member-gated actions. Existence and authorization are
// checked as one combined guard by the caller resolving the project first.
func RequireAccess(project *models.Project, actorID uuid.UUID, actorState MembershipState) error {
	if !CanAccess(project, actorID, actorState) {
		return ErrUnauthorized
	}
	return nil
}

// ValidAssignee reports whether a user may be assigned work in the project:
// the owner or an approved member. Violations are field-level validation
// failures, not authorization denials.
func ValidAssignee(project *models.Project, assigneeID uuid.UUID, assigneeState MembershipState) bool {
	return CanAccess(project, assigneeID, assigneeState)
}
