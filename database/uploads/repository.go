package uploads

import (
	"fmt"
	"time"

	"finpulse/database/models"

	"gorm.io/gorm"
)

// Repository handles database operations for upload audit records
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new uploads repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new upload record in processing state.
func (r *Repository) Create(u *models.Upload) error {
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// MarkCompleted flips an upload to completed with its processing time.
func (r *Repository) MarkCompleted(id string, rowCount int) error {
	now := time.Now()
	err := r.db.Model(&models.Upload{}).Where("id = ?", id).Updates(map[string]interface{}{
		"processing_status": models.UploadCompleted,
		"row_count":         rowCount,
		"processed_at":      &now,
	}).Error
	if err != nil {
		return fmt.Errorf("MarkCompleted: %w", err)
	}
	return nil
}

// MarkFailed records the failure reason for an upload.
func (r *Repository) MarkFailed(id string, reason string) error {
	err := r.db.Model(&models.Upload{}).Where("id = ?", id).Updates(map[string]interface{}{
		"processing_status": models.UploadFailed,
		"error_message":     reason,
	}).Error
	if err != nil {
		return fmt.Errorf("MarkFailed: %w", err)
	}
	return nil
}

// History lists a business's uploads, newest first.
func (r *Repository) History(businessID string, limit int) ([]models.Upload, error) {
	var records []models.Upload
	query := r.db.Where("business_id = ?", businessID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("History: %w", err)
	}
	return records, nil
}
