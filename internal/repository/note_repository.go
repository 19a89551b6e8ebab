package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collab-service/internal/models"
)

// NoteRepository provides methods to interact with the Note model in the database.
type NoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository instance with the provided GORM database connection.
func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// CreateNote creates a new Note in the database.
func (r *NoteRepository) CreateNote(note *models.Note) error {
	return r.db.Create(note).Error
}

// GetNote retrieves a Note by its ID with its creator and assignee loaded.
func (r *NoteRepository) GetNote(id uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		First(&note, "id = ?", id).Error
	return &note, err
}

// ListNotes retrieves a page of a project's notes, newest first, together
// with the total count.
func (r *NoteRepository) ListNotes(projectID uuid.UUID, offset, limit int) ([]models.Note, int64, error) {
	var total int64
	if err := r.db.Model(&models.Note{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []models.Note
	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notes).Error
	return notes, total, err
}

// UpdateNote updates an existing Note in the database.
func (r *NoteRepository) UpdateNote(note *models.Note) error {
	return r.db.Save(note).Error
}

// DeleteNote deletes a Note by its ID from the database.
func (r *NoteRepository) DeleteNote(id uuid.UUID) error {
	return r.db.Delete(&models.Note{}, "id = ?", id).Error
}
