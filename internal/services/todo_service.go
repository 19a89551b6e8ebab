package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

// TodoService implements the member-gated todo operations of a project.
type TodoService struct {
	todos       domain.TodoStore
	projects    domain.ProjectStore
	memberships domain.MembershipStore
}

// NewTodoService creates a new TodoService with the given stores.
func NewTodoService(todos domain.TodoStore, projects domain.ProjectStore, memberships domain.MembershipStore) *TodoService {
	return &TodoService{todos: todos, projects: projects, memberships: memberships}
}

// CreateTodoInput carries the fields of a todo creation request.
type CreateTodoInput struct {
	Title       string     `json:"title"`
	IsCompleted *bool      `json:"is_completed"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

// UpdateTodoInput is an optional-field patch: only present fields overwrite
// stored values. An explicit assignee_id null unassigns the todo.
type UpdateTodoInput struct {
	Title       *string             `json:"title"`
	IsCompleted *bool               `json:"is_completed"`
	AssigneeID  Optional[uuid.UUID] `json:"assignee_id"`
}

// ListTodos returns a page of the project's todos, newest first. Members and
// the owner only.
func (s *TodoService) ListTodos(actor *models.User, projectID uuid.UUID, offset, limit int) ([]models.Todo, int64, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, 0, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, 0, err
	}
	todos, total, err := s.todos.ListTodos(projectID, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list todos")
	}
	return todos, total, nil
}

// CreateTodo validates the input and creates a todo in the project, recording
// the actor as its creator.
func (s *TodoService) CreateTodo(actor *models.User, projectID uuid.UUID, in CreateTodoInput) (*models.Todo, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}

	ve := domain.ValidationErrors{}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		ve.Add("title", "The title field is required.")
	} else if len(in.Title) > 255 {
		ve.Add("title", "The title may not be greater than 255 characters.")
	}
	if in.AssigneeID != nil {
		if err := validateAssignee(s.memberships, project, *in.AssigneeID, ve); err != nil {
			return nil, err
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	todo := &models.Todo{
		ProjectID:  projectID,
		Title:      in.Title,
		AssigneeID: in.AssigneeID,
		CreatedBy:  &actor.ID,
	}
	if in.IsCompleted != nil {
		todo.IsCompleted = *in.IsCompleted
	}
	if err := s.todos.CreateTodo(todo); err != nil {
		return nil, errors.Wrap(err, "create todo")
	}
	return s.reload(todo.ID)
}

// GetTodo returns one todo of the project with its creator and assignee.
func (s *TodoService) GetTodo(actor *models.User, projectID, todoID uuid.UUID) (*models.Todo, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	todo, err := s.resolveTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodo applies an optional-field patch to a todo of the project.
func (s *TodoService) UpdateTodo(actor *models.User, projectID, todoID uuid.UUID, in UpdateTodoInput) (*models.Todo, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	todo, err := s.resolveTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}

	ve := domain.ValidationErrors{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			ve.Add("title", "The title field is required.")
		} else if len(title) > 255 {
			ve.Add("title", "The title may not be greater than 255 characters.")
		} else {
			todo.Title = title
		}
	}
	if in.IsCompleted != nil {
		todo.IsCompleted = *in.IsCompleted
	}
	if in.AssigneeID.Set {
		if in.AssigneeID.Value == nil {
			todo.AssigneeID = nil
		} else {
			if err := validateAssignee(s.memberships, project, *in.AssigneeID.Value, ve); err != nil {
				return nil, err
			}
			todo.AssigneeID = in.AssigneeID.Value
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if err := s.todos.UpdateTodo(todo); err != nil {
		return nil, errors.Wrap(err, "update todo")
	}
	return s.reload(todo.ID)
}

// DeleteTodo removes a todo of the project.
func (s *TodoService) DeleteTodo(actor *models.User, projectID, todoID uuid.UUID) error {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return err
	}
	if _, err := s.resolveTodo(projectID, todoID); err != nil {
		return err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return err
	}
	return errors.Wrap(s.todos.DeleteTodo(todoID), "delete todo")
}

// resolveTodo loads a todo and verifies it belongs to the stated project. A
// parent mismatch is a not-found condition, never an authorization one.
func (s *TodoService) resolveTodo(projectID, todoID uuid.UUID) (*models.Todo, error) {
	todo, err := s.todos.GetTodo(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, errors.Wrap(err, "load todo")
	}
	if todo.ProjectID != projectID {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) reload(id uuid.UUID) (*models.Todo, error) {
	todo, err := s.todos.GetTodo(id)
	if err != nil {
		return nil, errors.Wrap(err, "reload todo")
	}
	return todo, nil
}
