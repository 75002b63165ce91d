package config

import (
	"fmt"
	"os"
	"path/filepath"
	"schoolmatch/domain"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func GetDBDriver() string {
	v := os.Getenv("DB_DRIVER")
	if v == "" {
		return DriverSQLite
	}
	return v
}

// GetSQLitePath returns the database file location, instance/database.db by default.
func GetSQLitePath() string {
	v := os.Getenv("DB_PATH")
	if v == "" {
		return filepath.Join("instance", "database.db")
	}
	return v
}

// GetDatabaseURL builds the postgres connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

func getDialector() (gorm.Dialector, error) {
	switch GetDBDriver() {
	case DriverSQLite:
		path := GetSQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// foreign keys are off by default in sqlite
		return sqlite.Open(path + "?_foreign_keys=on"), nil
	case DriverPostgres:
		return postgres.Open(GetDatabaseURL()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", GetDBDriver())
	}
}

// BootDB opens the configured database and runs migrations.
func BootDB() (*gorm.DB, error) {
	dialector, err := getDialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return db, err
	}

	GetLogrusInstance().WithField("driver", GetDBDriver()).Info("DB initialized")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	// escola must exist before avaliacao references it
	if err := db.AutoMigrate(
		&domain.School{},
		&domain.Parent{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.Evaluation{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	return nil
}
