package domain

import (
	"time"

	"github.com/google/uuid"

	"collab-service/internal/models"
)

// MembershipState is the state-machine view of a membership record. Unlike
// models.MembershipStatus it includes the absent state (no row).
type MembershipState string

const (
	StateAbsent   MembershipState = "absent"
	StatePending  MembershipState = MembershipState(models.MembershipPending)
	StateApproved MembershipState = MembershipState(models.MembershipApproved)
	StateRejected MembershipState = MembershipState(models.MembershipRejected)
)

// StateOf maps a stored membership row (or nil) to its state.
func StateOf(m *models.Membership) MembershipState {
	if m == nil {
		return StateAbsent
	}
	return MembershipState(m.Status)
}

// JoinOutcome describes what a legal join request must do to storage.
type JoinOutcome int

const (
	// JoinCreate inserts a fresh pending row.
	JoinCreate JoinOutcome = iota
	// JoinReRequest resets an existing rejected row back to pending.
	JoinReRequest
)

// Join decides a request-to-join against the current state. The owner never
// joins through the state machine; duplicate requests are conflicts.
func Join(current MembershipState, actorIsOwner bool) (JoinOutcome, error) {
	if actorIsOwner {
		return 0, ErrOwnerJoin
	}
	switch current {
	case StateAbsent:
		return JoinCreate, nil
	case StateRejected:
		return JoinReRequest, nil
	case StatePending:
		return 0, ErrRequestPending
	case StateApproved:
		return 0, ErrAlreadyMember
	default:
		return 0, ErrRequestPending
	}
}

// Respond decides an approve or reject by the given actor. Only the owner
// responds, and only while a pending record exists.
func Respond(current MembershipState, actorIsOwner bool) error {
	if !actorIsOwner {
		return ErrNotOwner
	}
	if current != StatePending {
		return ErrNoPendingRequest
	}
	return nil
}

// Leave decides whether the actor may delete their membership row. The owner
// can never leave; everyone else must currently be approved.
func Leave(current MembershipState, actorIsOwner bool) error {
	if actorIsOwner {
		return ErrOwnerLeave
	}
	if current != StateApproved {
		return ErrNotMember
	}
	return nil
}

// NewPendingMembership builds the row a fresh join request inserts.
func NewPendingMembership(projectID, userID uuid.UUID, now time.Time) *models.Membership {
	return &models.Membership{
		ProjectID:   projectID,
		UserID:      userID,
		Status:      models.MembershipPending,
		RequestedAt: now,
	}
}

// NewOwnerMembership builds the auto-approved row attached to the creator
// when a project is made.
func NewOwnerMembership(projectID, ownerID uuid.UUID, now time.Time) *models.Membership {
	return &models.Membership{
		ProjectID:   projectID,
		UserID:      ownerID,
		Status:      models.MembershipApproved,
		RequestedAt: now,
		RespondedAt: &now,
		ApprovedBy:  &ownerID,
	}
}
