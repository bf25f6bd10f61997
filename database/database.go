// Package database provides database connection management for the
// finpulse financial analytics service.
//
// Two connection paths exist on purpose:
//   - GORM (this file) backs the repositories that own writes and
//     simple reads (transactions, metrics, insights, uploads)
//   - database/sql with lib/pq (connection.go) backs the raw-SQL
//     analytics queries that feed the dashboard endpoints
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finpulse/database/models"
)

// Database holds the GORM database connection and provides access to
// the underlying DB instance.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access
// when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema performs auto-migration of all finpulse tables
func (d *Database) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	err := d.db.AutoMigrate(
		&models.Transaction{},
		&models.FinancialMetrics{},
		&models.Insight{},
		&models.Upload{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	fmt.Println("✅ Database schema ready")
	return nil
}
