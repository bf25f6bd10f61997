package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// SQLDB wraps the raw database/sql connection used by the analytics
// queries, which are hand-written SQL rather than GORM.
type SQLDB struct {
	conn *sql.DB
}

// SQLConfig holds raw connection configuration
type SQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewSQLConnection creates a new raw database connection
func NewSQLConnection(cfg SQLConfig) (*SQLDB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Dashboard queries are short aggregate scans, a small pool is enough
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(2 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Analytics database connection established")

	return &SQLDB{conn: conn}, nil
}

// Close closes the database connection
func (db *SQLDB) Close() error {
	if db.conn != nil {
		log.Println("📡 Closing analytics database connection...")
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection
func (db *SQLDB) Conn() *sql.DB {
	return db.conn
}
