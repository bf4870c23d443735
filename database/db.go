package database

import (
	"fmt"
	"log/slog"
	"time"

	"rumor-detection/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database behind dsn, migrates the schema and stores the
// handle for GetDB.
func InitDB(dsn string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	slog.Info("database connected", "dsn", dsn)
	return nil
}

// Open connects to a sqlite database. Timestamps are written in UTC so that
// range filters and day bucketing agree across hosts.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	// sqlite serializes writers; one connection also keeps :memory: databases alive.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Detection{},
		&models.Analysis{},
		&models.PropagationNode{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
