package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
	"collab-service/internal/services"
	"collab-service/internal/testutil"
)

// staleReadMemberships simulates the losing side of two racing joins: the
// pre-insert read still sees no row, but by insert time the winning join has
// created one, so the write fails on the storage uniqueness constraint.
type staleReadMemberships struct {
	*testutil.MemStore
}

func (s *staleReadMemberships) GetMembership(projectID, userID uuid.UUID) (*models.Membership, error) {
	return nil, gorm.ErrRecordNotFound
}

func newMembershipFixture(t *testing.T) (*testutil.MemStore, *services.MembershipService, *services.ProjectService, *models.User, *models.Project) {
	t.Helper()
	store := testutil.NewMemStore()
	projectSvc := services.NewProjectService(store, store)
	membershipSvc := services.NewMembershipService(store, store, store)

	owner := store.AddUser("Owner", "owner@example.com")
	project, err := projectSvc.CreateProject(owner, services.CreateProjectInput{Name: "Thesis"})
	require.NoError(t, err)
	return store, membershipSvc, projectSvc, owner, project
}

func TestJoinCreatesPendingMembership(t *testing.T) {
	store, svc, _, _, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	result, err := svc.Join(alice, project.ID)
	require.NoError(t, err)
	assert.False(t, result.Resubmitted)

	m, err := store.GetMembership(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPending, m.Status)
	assert.False(t, m.RequestedAt.IsZero())
	assert.Nil(t, m.RespondedAt)
	assert.Nil(t, m.ApprovedBy)
}

func TestJoinByOwnerIsConflict(t *testing.T) {
	_, svc, _, owner, project := newMembershipFixture(t)

	_, err := svc.Join(owner, project.ID)
	assert.ErrorIs(t, err, domain.ErrOwnerJoin)
}

func TestJoinTwiceIsConflict(t *testing.T) {
	store, svc, _, _, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)

	_, err = svc.Join(alice, project.ID)
	assert.ErrorIs(t, err, domain.ErrRequestPending)
}

func TestJoinLosingInsertRaceIsConflict(t *testing.T) {
	store, svc, _, _, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	// The winning join has already inserted Alice's pending row.
	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)

	// The losing join read the state before that insert landed; its own
	// insert must fail on the (project_id, user_id) constraint and surface
	// as a conflict, not a crash or a second row.
	racing := services.NewMembershipService(store, &staleReadMemberships{MemStore: store}, store)
	_, err = racing.Join(alice, project.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateJoin)

	m, err := store.GetMembership(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPending, m.Status)
}

func TestJoinUnknownProjectIsNotFound(t *testing.T) {
	store, svc, _, _, _ := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	_, err := svc.Join(alice, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestApproveSetsResponseFields(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)

	target, err := svc.Approve(owner, project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, target.ID)

	m, err := store.GetMembership(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipApproved, m.Status)
	require.NotNil(t, m.RespondedAt)
	require.NotNil(t, m.ApprovedBy)
	assert.Equal(t, owner.ID, *m.ApprovedBy)
}

func TestApproveByNonOwnerIsDeniedWithoutStateChange(t *testing.T) {
	store, svc, _, _, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")
	mallory := store.AddUser("Mallory", "mallory@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)

	_, err = svc.Approve(mallory, project.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	m, err := store.GetMembership(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPending, m.Status)
}

func TestApproveWithoutPendingRequestIsNotFound(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	_, err := svc.Approve(owner, project.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)

	_, err = svc.Approve(owner, project.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRejectThenReRequestClearsResponseFields(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	bob := store.AddUser("Bob", "bob@example.com")

	_, err := svc.Join(bob, project.ID)
	require.NoError(t, err)
	_, err = svc.Reject(owner, project.ID, bob.ID)
	require.NoError(t, err)

	m, err := store.GetMembership(project.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipRejected, m.Status)
	assert.NotNil(t, m.RespondedAt)

	result, err := svc.Join(bob, project.ID)
	require.NoError(t, err)
	assert.True(t, result.Resubmitted)

	m, err = store.GetMembership(project.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPending, m.Status)
	assert.Nil(t, m.RespondedAt)
	assert.Nil(t, m.ApprovedBy)
}

func TestLeaveDeletesApprovedMembership(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)
	_, err = svc.Approve(owner, project.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(alice, project.ID))

	_, err = store.GetMembership(project.ID, alice.ID)
	assert.Error(t, err)
}

func TestLeaveByOwnerIsAlwaysDenied(t *testing.T) {
	_, svc, _, owner, project := newMembershipFixture(t)

	err := svc.Leave(owner, project.ID)
	assert.ErrorIs(t, err, domain.ErrOwnerLeave)
}

func TestLeaveByNonMemberFails(t *testing.T) {
	store, svc, _, _, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")

	err := svc.Leave(alice, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	// Pending is not enough to leave either.
	_, err = svc.Join(alice, project.ID)
	require.NoError(t, err)
	err = svc.Leave(alice, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestMembersVisibleToOwnerAndApprovedMembersOnly(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")
	stranger := store.AddUser("Eve", "eve@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)
	_, err = svc.Approve(owner, project.ID, alice.ID)
	require.NoError(t, err)

	members, err := svc.Members(owner, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2) // owner's auto-membership + alice

	_, err = svc.Members(stranger, project.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequestsAreOwnerOnly(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	alice := store.AddUser("Alice", "alice@example.com")
	bob := store.AddUser("Bob", "bob@example.com")

	_, err := svc.Join(alice, project.ID)
	require.NoError(t, err)
	_, err = svc.Join(bob, project.ID)
	require.NoError(t, err)

	requests, err := svc.Requests(owner, project.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, alice.ID, requests[0].ID)
	assert.Equal(t, bob.ID, requests[1].ID)

	_, err = svc.Requests(alice, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

// Full workflow: O creates P; A joins and is approved and can work in P;
// B joins, is rejected and cannot; B re-requests, is approved, and can.
func TestMembershipWorkflowEndToEnd(t *testing.T) {
	store, svc, _, owner, project := newMembershipFixture(t)
	todoSvc := services.NewTodoService(store, store, store)
	a := store.AddUser("A", "a@example.com")
	b := store.AddUser("B", "b@example.com")

	_, err := svc.Join(a, project.ID)
	require.NoError(t, err)
	_, err = svc.Approve(owner, project.ID, a.ID)
	require.NoError(t, err)

	_, err = todoSvc.CreateTodo(a, project.ID, services.CreateTodoInput{Title: "write intro"})
	require.NoError(t, err)

	_, err = svc.Join(b, project.ID)
	require.NoError(t, err)
	_, err = svc.Reject(owner, project.ID, b.ID)
	require.NoError(t, err)

	_, err = todoSvc.CreateTodo(b, project.ID, services.CreateTodoInput{Title: "sneaky"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Join(b, project.ID)
	require.NoError(t, err)
	_, err = svc.Approve(owner, project.ID, b.ID)
	require.NoError(t, err)

	_, err = todoSvc.CreateTodo(b, project.ID, services.CreateTodoInput{Title: "write outro"})
	require.NoError(t, err)

	todos, total, err := todoSvc.ListTodos(b, project.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "write outro", todos[0].Title)
}
