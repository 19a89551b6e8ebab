package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

// MembershipService drives the membership workflow: join requests, owner
// responses, leaving, and member listings.
type MembershipService struct {
	projects    domain.ProjectStore
	memberships domain.MembershipStore
	users       domain.UserStore
}

// NewMembershipService creates a new MembershipService with the given stores.
func NewMembershipService(projects domain.ProjectStore, memberships domain.MembershipStore, users domain.UserStore) *MembershipService {
	return &MembershipService{projects: projects, memberships: memberships, users: users}
}

// JoinResult reports whether a join request was a fresh request or a
// re-request after rejection.
type JoinResult struct {
	Resubmitted bool
}

// Join files a request to join a project, or re-files it after a rejection.
// Duplicate requests and owner self-joins are conflicts.
func (s *MembershipService) Join(actor *models.User, projectID uuid.UUID) (JoinResult, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return JoinResult{}, err
	}
	state, err := membershipState(s.memberships, projectID, actor.ID)
	if err != nil {
		return JoinResult{}, err
	}

	outcome, err := domain.Join(state, domain.IsOwner(project, actor.ID))
	if err != nil {
		return JoinResult{}, err
	}
	switch outcome {
	case domain.JoinReRequest:
		if err := s.memberships.ResetToPending(projectID, actor.ID); err != nil {
			return JoinResult{}, errors.Wrap(err, "re-request join")
		}
		return JoinResult{Resubmitted: true}, nil
	default:
		m := domain.NewPendingMembership(projectID, actor.ID, time.Now())
		if err := s.memberships.CreateMembership(m); err != nil {
			// A concurrent join for the same pair lost the race on the
			// storage uniqueness constraint.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return JoinResult{}, domain.ErrDuplicateJoin
			}
			return JoinResult{}, errors.Wrap(err, "create join request")
		}
		return JoinResult{}, nil
	}
}

// Leave removes the actor's approved membership. The owner can never leave.
func (s *MembershipService) Leave(actor *models.User, projectID uuid.UUID) error {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return err
	}
	state, err := membershipState(s.memberships, projectID, actor.ID)
	if err != nil {
		return err
	}
	if err := domain.Leave(state, domain.IsOwner(project, actor.ID)); err != nil {
		return err
	}
	return errors.Wrap(s.memberships.DeleteMembership(projectID, actor.ID), "leave project")
}

// Members lists the approved members of a project. Visible to the owner and
// approved members.
func (s *MembershipService) Members(actor *models.User, projectID uuid.UUID) ([]models.UserRef, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}

	rows, err := s.memberships.ListMembers(projectID, models.MembershipApproved)
	if err != nil {
		return nil, errors.Wrap(err, "list members")
	}
	members := make([]models.UserRef, 0, len(rows))
	for _, m := range rows {
		if m.User == nil {
			continue
		}
		members = append(members, models.UserRef{ID: m.User.ID, Name: m.User.Name, Email: m.User.Email})
	}
	return members, nil
}

// Requests lists the pending join requests of a project. Owner only.
func (s *MembershipService) Requests(actor *models.User, projectID uuid.UUID) ([]JoinRequest, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(project, actor.ID); err != nil {
		return nil, err
	}

	rows, err := s.memberships.ListMembers(projectID, models.MembershipPending)
	if err != nil {
		return nil, errors.Wrap(err, "list join requests")
	}
	requests := make([]JoinRequest, 0, len(rows))
	for _, m := range rows {
		if m.User == nil {
			continue
		}
		requests = append(requests, JoinRequest{
			ID:          m.User.ID,
			Name:        m.User.Name,
			Email:       m.User.Email,
			RequestedAt: m.RequestedAt,
		})
	}
	return requests, nil
}

// Approve moves a pending join request to approved. Owner only.
func (s *MembershipService) Approve(actor *models.User, projectID, userID uuid.UUID) (*models.User, error) {
	return s.respond(actor, projectID, userID, models.MembershipApproved)
}

// Reject moves a pending join request to rejected. Owner only. The rejected
// user may re-request later.
func (s *MembershipService) Reject(actor *models.User, projectID, userID uuid.UUID) (*models.User, error) {
	return s.respond(actor, projectID, userID, models.MembershipRejected)
}

func (s *MembershipService) respond(actor *models.User, projectID, userID uuid.UUID, status models.MembershipStatus) (*models.User, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "load user")
	}

	state, err := membershipState(s.memberships, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := domain.Respond(state, domain.IsOwner(project, actor.ID)); err != nil {
		return nil, err
	}

	// The write is conditioned on the row still being pending so a concurrent
	// response cannot be overwritten.
	ok, err := s.memberships.Respond(projectID, userID, status, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "respond to join request")
	}
	if !ok {
		return nil, domain.ErrNoPendingRequest
	}
	return target, nil
}
