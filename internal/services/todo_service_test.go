package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-service/internal/domain"
	"collab-service/internal/models"
	"collab-service/internal/services"
	"collab-service/internal/testutil"
)

type todoFixture struct {
	store   *testutil.MemStore
	todos   *services.TodoService
	owner   *models.User
	member  *models.User
	outside *models.User
	project *models.Project
}

func newTodoFixture(t *testing.T) *todoFixture {
	t.Helper()
	store := testutil.NewMemStore()
	projectSvc := services.NewProjectService(store, store)
	membershipSvc := services.NewMembershipService(store, store, store)

	owner := store.AddUser("Owner", "owner@example.com")
	member := store.AddUser("Member", "member@example.com")
	outside := store.AddUser("Outside", "outside@example.com")

	project, err := projectSvc.CreateProject(owner, services.CreateProjectInput{Name: "P"})
	require.NoError(t, err)
	_, err = membershipSvc.Join(member, project.ID)
	require.NoError(t, err)
	_, err = membershipSvc.Approve(owner, project.ID, member.ID)
	require.NoError(t, err)

	return &todoFixture{
		store:   store,
		todos:   services.NewTodoService(store, store, store),
		owner:   owner,
		member:  member,
		outside: outside,
		project: project,
	}
}

func TestCreateTodoRecordsCreator(t *testing.T) {
	f := newTodoFixture(t)

	todo, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{Title: "write draft"})
	require.NoError(t, err)
	assert.Equal(t, "write draft", todo.Title)
	assert.False(t, todo.IsCompleted)
	require.NotNil(t, todo.Creator)
	assert.Equal(t, f.member.ID, todo.Creator.ID)
}

func TestCreateTodoDeniedForNonMembers(t *testing.T) {
	f := newTodoFixture(t)

	_, err := f.todos.CreateTodo(f.outside, f.project.ID, services.CreateTodoInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateTodoValidation(t *testing.T) {
	f := newTodoFixture(t)

	_, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{Title: ""})
	var ve domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "title")
}

func TestTodoAssigneeMustBeMemberOrOwner(t *testing.T) {
	f := newTodoFixture(t)

	// Owner and approved member are valid assignees.
	todo, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{
		Title:      "assigned to owner",
		AssigneeID: &f.owner.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, todo.Assignee)
	assert.Equal(t, f.owner.ID, todo.Assignee.ID)

	// A non-member assignee is a field-level failure, not a 403.
	_, err = f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{
		Title:      "assigned to outsider",
		AssigneeID: &f.outside.ID,
	})
	var ve domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "assignee_id")
}

func TestUpdateTodoPatchesPresentFieldsOnly(t *testing.T) {
	f := newTodoFixture(t)

	todo, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{Title: "original"})
	require.NoError(t, err)

	done := true
	updated, err := f.todos.UpdateTodo(f.owner, f.project.ID, todo.ID, services.UpdateTodoInput{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, "original", updated.Title)
}

func TestUpdateTodoNullAssigneeUnassigns(t *testing.T) {
	f := newTodoFixture(t)

	todo, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{
		Title:      "assigned",
		AssigneeID: &f.owner.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, todo.AssigneeID)

	// An absent assignee_id key keeps the assignment.
	updated, err := f.todos.UpdateTodo(f.member, f.project.ID, todo.ID, services.UpdateTodoInput{})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)

	// An explicit null unassigns.
	updated, err = f.todos.UpdateTodo(f.member, f.project.ID, todo.ID, services.UpdateTodoInput{
		AssigneeID: services.Optional[uuid.UUID]{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
	assert.Nil(t, updated.Assignee)

	// Re-assignment through the same field still enforces the membership
	// constraint.
	_, err = f.todos.UpdateTodo(f.member, f.project.ID, todo.ID, services.UpdateTodoInput{
		AssigneeID: services.Optional[uuid.UUID]{Set: true, Value: &f.outside.ID},
	})
	var ve domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "assignee_id")
}

func TestTodoParentMismatchIsNotFound(t *testing.T) {
	f := newTodoFixture(t)
	projectSvc := services.NewProjectService(f.store, f.store)

	other, err := projectSvc.CreateProject(f.owner, services.CreateProjectInput{Name: "other"})
	require.NoError(t, err)
	todo, err := f.todos.CreateTodo(f.owner, other.ID, services.CreateTodoInput{Title: "elsewhere"})
	require.NoError(t, err)

	// The todo exists but under a different project.
	_, err = f.todos.GetTodo(f.owner, f.project.ID, todo.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	_, err = f.todos.UpdateTodo(f.owner, f.project.ID, todo.ID, services.UpdateTodoInput{})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	err = f.todos.DeleteTodo(f.owner, f.project.ID, todo.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	_, err = f.todos.GetTodo(f.owner, f.project.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestDeleteTodo(t *testing.T) {
	f := newTodoFixture(t)

	todo, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{Title: "t"})
	require.NoError(t, err)

	require.NoError(t, f.todos.DeleteTodo(f.member, f.project.ID, todo.ID))

	_, err = f.todos.GetTodo(f.member, f.project.ID, todo.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestListTodosPaginatesNewestFirst(t *testing.T) {
	f := newTodoFixture(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := f.todos.CreateTodo(f.member, f.project.ID, services.CreateTodoInput{Title: title})
		require.NoError(t, err)
	}

	todos, total, err := f.todos.ListTodos(f.owner, f.project.ID, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, todos, 2)
	assert.Equal(t, "c", todos[0].Title)
	assert.Equal(t, "b", todos[1].Title)

	todos, _, err = f.todos.ListTodos(f.owner, f.project.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "a", todos[0].Title)

	_, _, err = f.todos.ListTodos(f.outside, f.project.ID, 0, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
