package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collab-service/internal/models"
)

// ProjectRepository provides methods to interact with the Project model in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject creates a Project together with the creator's auto-approved
// membership row in a single transaction.
func (r *ProjectRepository) CreateProject(project *models.Project, ownerMembership *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		ownerMembership.ProjectID = project.ID
		return tx.Create(ownerMembership).Error
	})
}

// GetProject retrieves a Project by its ID from the database.
func (r *ProjectRepository) GetProject(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	return &project, err
}

// GetProjectDetail retrieves a Project with its creator, membership rows
// (including the member identities), todos and notes.
func (r *ProjectRepository) GetProjectDetail(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Creator").
		Preload("Memberships.User").
		Preload("Todos.Assignee").
		Preload("Todos.Creator").
		Preload("Notes.Creator").
		Preload("Notes.Assignee").
		First(&project, "id = ?", id).Error
	return &project, err
}

// ListVisibleProjects retrieves the page of projects the user owns or is an
// approved member of, newest first, together with the total count.
func (r *ProjectRepository) ListVisibleProjects(userID uuid.UUID, offset, limit int) ([]models.Project, int64, error) {
	memberOf := r.db.Model(&models.Membership{}).
		Select("project_id").
		Where("user_id = ? AND status = ?", userID, models.MembershipApproved)

	var total int64
	if err := r.db.Model(&models.Project{}).
		Where("created_by = ? OR id IN (?)", userID, memberOf).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.db.
		Where("created_by = ? OR id IN (?)", userID, memberOf).
		Preload("Creator").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	return projects, total, err
}

// UpdateProject updates an existing Project in the database.
func (r *ProjectRepository) UpdateProject(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteProject deletes a Project and cascades to its memberships, todos and
// notes in a single transaction so no orphaned child rows survive.
func (r *ProjectRepository) DeleteProject(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
