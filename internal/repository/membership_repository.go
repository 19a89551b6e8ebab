package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collab-service/internal/models"
)

// MembershipRepository provides methods to interact with the Membership model
// in the database. The (project_id, user_id) pair is the table's primary key,
// so duplicate join rows fail at the storage level.
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository instance with the provided GORM database connection.
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetMembership retrieves the Membership row for a (project, user) pair.
func (r *MembershipRepository) GetMembership(projectID, userID uuid.UUID) (*models.Membership, error) {
	var m models.Membership
	err := r.db.First(&m, "project_id = ? AND user_id = ?", projectID, userID).Error
	return &m, err
}

// CreateMembership inserts a new Membership row. A concurrent duplicate
// surfaces as gorm.ErrDuplicatedKey through the driver's error translation.
func (r *MembershipRepository) CreateMembership(m *models.Membership) error {
	return r.db.Create(m).Error
}

// ResetToPending moves a rejected row back to pending, clearing the response
// fields and refreshing requested_at.
func (r *MembershipRepository) ResetToPending(projectID, userID uuid.UUID) error {
	return r.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Updates(map[string]interface{}{
			"status":       models.MembershipPending,
			"requested_at": time.Now(),
			"responded_at": nil,
			"approved_by":  nil,
		}).Error
}

// Respond conditionally updates a pending row to the given status, recording
// the responder and the response time. The update is guarded on the current
// status so a stale read cannot overwrite a concurrent response; it reports
// false when no pending row existed at write time.
func (r *MembershipRepository) Respond(projectID, userID uuid.UUID, status models.MembershipStatus, responderID uuid.UUID) (bool, error) {
	res := r.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ? AND status = ?", projectID, userID, models.MembershipPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": time.Now(),
			"approved_by":  responderID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteMembership removes the Membership row for a (project, user) pair.
func (r *MembershipRepository) DeleteMembership(projectID, userID uuid.UUID) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.Membership{}).Error
}

// ListMembers retrieves all Membership rows of a project in the given status,
// oldest request first, with the member identities loaded.
func (r *MembershipRepository) ListMembers(projectID uuid.UUID, status models.MembershipStatus) ([]models.Membership, error) {
	var members []models.Membership
	err := r.db.
		Preload("User").
		Where("project_id = ? AND status = ?", projectID, status).
		Order("requested_at ASC").
		Find(&members).Error
	return members, err
}
