package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/drivers/sqlite"

	"github.com/wattwise/wattwise/pkg/contracts"
	"github.com/wattwise/wattwise/pkg/models"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseStorage implements contracts.Vault over a SQL database.
type DatabaseStorage struct {
	db     *squealx.DB
	dbType DatabaseType
}

// NewDatabaseStorage wraps an open connection and ensures the schema
// exists for its driver.
func NewDatabaseStorage(db *squealx.DB) (*DatabaseStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	storage := &DatabaseStorage{
		db:     db,
		dbType: DatabaseType(db.DriverName()),
	}
	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return storage, nil
}

// OpenSQLite opens (or creates) a SQLite-backed vault at path.
func OpenSQLite(path string) (*DatabaseStorage, error) {
	db, err := sqlite.Open(path, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewDatabaseStorage(db)
}

// DB exposes the underlying handle for collaborators that query beyond
// credential fields (the report engine).
func (d *DatabaseStorage) DB() *squealx.DB {
	return d.db
}

func (d *DatabaseStorage) createTables() error {
	var queries []string
	switch d.dbType {
	case MySQL:
		queries = d.getMySQLSchema()
	case PostgreSQL:
		queries = d.getPostgreSQLSchema()
	case SQLite:
		queries = d.getSQLiteSchema()
	default:
		return fmt.Errorf("unsupported database type: %s", d.dbType)
	}
	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

func (d *DatabaseStorage) getMySQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			email VARCHAR(254) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			totp_secret VARCHAR(64) DEFAULT '' NOT NULL,
			device_id VARCHAR(255) DEFAULT '' NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_users_email (email)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS wash_sessions (
			session_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			wash_timestamp TIMESTAMP NOT NULL,
			electric_consumption DOUBLE NOT NULL,
			water_consumption DOUBLE NOT NULL,
			total_cost DOUBLE NOT NULL,
			INDEX idx_wash_sessions_user_id (user_id),
			INDEX idx_wash_sessions_timestamp (wash_timestamp)
		) ENGINE=InnoDB`,
	}
}

func (d *DatabaseStorage) getPostgreSQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			email VARCHAR(254) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			totp_secret VARCHAR(64) DEFAULT '' NOT NULL,
			device_id VARCHAR(255) DEFAULT '' NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS wash_sessions (
			session_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			wash_timestamp TIMESTAMP NOT NULL,
			electric_consumption DOUBLE PRECISION NOT NULL,
			water_consumption DOUBLE PRECISION NOT NULL,
			total_cost DOUBLE PRECISION NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_wash_sessions_user_id ON wash_sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wash_sessions_timestamp ON wash_sessions(wash_timestamp)`,
	}
}

func (d *DatabaseStorage) getSQLiteSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			totp_secret TEXT DEFAULT '' NOT NULL,
			device_id TEXT DEFAULT '' NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS wash_sessions (
			session_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			wash_timestamp DATETIME NOT NULL,
			electric_consumption REAL NOT NULL,
			water_consumption REAL NOT NULL,
			total_cost REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_wash_sessions_user_id ON wash_sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wash_sessions_timestamp ON wash_sessions(wash_timestamp)`,
	}
}

func (d *DatabaseStorage) FindByEmail(email string) (models.UserCredential, error) {
	var user models.UserCredential
	err := d.db.Get(&user, `SELECT user_id, email, password_hash, totp_secret, device_id FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserCredential{}, contracts.ErrNotFound
		}
		return models.UserCredential{}, fmt.Errorf("user lookup by email failed: %w", err)
	}
	return user, nil
}

func (d *DatabaseStorage) FindByID(id int64) (models.UserCredential, error) {
	var user models.UserCredential
	err := d.db.Get(&user, `SELECT user_id, email, password_hash, totp_secret, device_id FROM users WHERE user_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserCredential{}, contracts.ErrNotFound
		}
		return models.UserCredential{}, fmt.Errorf("user lookup by id failed: %w", err)
	}
	return user, nil
}

// UpdateTOTPSecret overwrites the stored secret for the user; an empty
// secret disables the second factor.
func (d *DatabaseStorage) UpdateTOTPSecret(id int64, secret string) error {
	query := `UPDATE users SET totp_secret = :totp_secret, updated_at = CURRENT_TIMESTAMP WHERE user_id = :user_id`
	params := map[string]any{
		"totp_secret": secret,
		"user_id":     id,
	}
	result, err := d.db.NamedExec(query, params)
	if err != nil {
		return fmt.Errorf("totp secret update failed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

func (d *DatabaseStorage) CreateUser(user models.UserCredential) error {
	query := `INSERT INTO users (user_id, email, password_hash, totp_secret, device_id)
		VALUES (:user_id, :email, :password_hash, :totp_secret, :device_id)`
	params := map[string]any{
		"user_id":       user.UserID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"totp_secret":   user.TOTPSecret,
		"device_id":     user.DeviceID,
	}
	if _, err := d.db.NamedExec(query, params); err != nil {
		return fmt.Errorf("user insert failed: %w", err)
	}
	return nil
}
