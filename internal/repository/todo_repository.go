package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collab-service/internal/models"
)

// TodoRepository provides methods to interact with the Todo model in the database.
type TodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository instance with the provided GORM database connection.
func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// CreateTodo creates a new Todo in the database.
func (r *TodoRepository) CreateTodo(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// GetTodo retrieves a Todo by its ID with its creator and assignee loaded.
func (r *TodoRepository) GetTodo(id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		First(&todo, "id = ?", id).Error
	return &todo, err
}

// ListTodos retrieves a page of a project's todos, newest first, together
// with the total count.
func (r *TodoRepository) ListTodos(projectID uuid.UUID, offset, limit int) ([]models.Todo, int64, error) {
	var total int64
	if err := r.db.Model(&models.Todo{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []models.Todo
	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&todos).Error
	return todos, total, err
}

// UpdateTodo updates an existing Todo in the database.
func (r *TodoRepository) UpdateTodo(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// DeleteTodo deletes a Todo by its ID from the database.
func (r *TodoRepository) DeleteTodo(id uuid.UUID) error {
	return r.db.Delete(&models.Todo{}, "id = ?", id).Error
}
