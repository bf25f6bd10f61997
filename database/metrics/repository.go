package metrics

import (
	"errors"
	"fmt"

	"finpulse/database"
	"finpulse/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles database operations for financial metrics
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new metrics repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the metrics record for a business, replacing any
// previous record. One row per business.
func (r *Repository) Upsert(m *models.FinancialMetrics) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

// Get retrieves the current metrics record for a business.
func (r *Repository) Get(businessID string) (*models.FinancialMetrics, error) {
	var m models.FinancialMetrics
	err := r.db.Where("business_id = ?", businessID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundErrorWithID("financial metrics", businessID)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &m, nil
}
