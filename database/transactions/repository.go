package transactions

import (
	"fmt"

	"finpulse/database/models"

	"gorm.io/gorm"
)

// Repository handles database operations for transaction batches
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new transactions repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Replace removes the business's previous batch and inserts the new
// one. Callers that need atomicity with the metrics upsert must pass a
// *gorm.DB already inside a transaction.
func (r *Repository) Replace(businessID string, batch []models.Transaction) error {
	if err := r.db.Where("business_id = ?", businessID).Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("Replace delete: %w", err)
	}

	if len(batch) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(batch, 200).Error; err != nil {
		return fmt.Errorf("Replace insert: %w", err)
	}
	return nil
}

// List retrieves the business's current batch, newest first.
func (r *Repository) List(businessID string, limit int) ([]models.Transaction, error) {
	var batch []models.Transaction
	query := r.db.Where("business_id = ?", businessID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&batch).Error; err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return batch, nil
}

// Count returns the size of the business's current batch.
func (r *Repository) Count(businessID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
