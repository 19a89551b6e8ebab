package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

func TestCanAccess(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()
	project := &models.Project{ID: uuid.New(), CreatedBy: ownerID}

	// Owner passes without any membership row.
	assert.True(t, domain.CanAccess(project, ownerID, domain.StateAbsent))

	// Approved members pass; every other state is denied.
	assert.True(t, domain.CanAccess(project, memberID, domain.StateApproved))
	assert.False(t, domain.CanAccess(project, memberID, domain.StatePending))
	assert.False(t, domain.CanAccess(project, memberID, domain.StateRejected))
	assert.False(t, domain.CanAccess(project, strangerID, domain.StateAbsent))
}

func TestRequireOwner(t *testing.T) {
	ownerID := uuid.New()
	project := &models.Project{ID: uuid.New(), CreatedBy: ownerID}

	assert.NoError(t, domain.RequireOwner(project, ownerID))

	// Approved membership does not grant owner-only actions.
	err := domain.RequireOwner(project, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestRequireAccess(t *testing.T) {
	project := &models.Project{ID: uuid.New(), CreatedBy: uuid.New()}
	actorID := uuid.New()

	assert.NoError(t, domain.RequireAccess(project, actorID, domain.StateApproved))

	err := domain.RequireAccess(project, actorID, domain.StateRejected)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidAssignee(t *testing.T) {
	ownerID := uuid.New()
	project := &models.Project{ID: uuid.New(), CreatedBy: ownerID}

	assert.True(t, domain.ValidAssignee(project, ownerID, domain.StateAbsent))
	assert.True(t, domain.ValidAssignee(project, uuid.New(), domain.StateApproved))
	assert.False(t, domain.ValidAssignee(project, uuid.New(), domain.StatePending))
	assert.False(t, domain.ValidAssignee(project, uuid.New(), domain.StateAbsent))
}
