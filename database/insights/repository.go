package insights

import (
	"fmt"

	"finpulse/database/models"

	"gorm.io/gorm"
)

// Repository handles database operations for insights
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new insights repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Replace swaps the business's stored insights for a fresh set.
func (r *Repository) Replace(businessID string, set []models.Insight) error {
	if err := r.db.Where("business_id = ?", businessID).Delete(&models.Insight{}).Error; err != nil {
		return fmt.Errorf("Replace delete: %w", err)
	}

	if len(set) == 0 {
		return nil
	}

	for i := range set {
		set[i].BusinessID = businessID
	}
	if err := r.db.Create(&set).Error; err != nil {
		return fmt.Errorf("Replace insert: %w", err)
	}
	return nil
}

// List retrieves the business's current insights, most severe first is
// left to the caller; storage order is creation order.
func (r *Repository) List(businessID string) ([]models.Insight, error) {
	var set []models.Insight
	if err := r.db.Where("business_id = ?", businessID).Order("id ASC").Find(&set).Error; err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return set, nil
}
