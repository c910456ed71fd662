// Package database owns the GORM handle and schema bootstrap for the
// catalog. Entity-specific operations live in the users, authors and
// materials sub-packages; each receives the *gorm.DB explicitly instead
// of reaching for a global.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the relational store and migrates the catalog
// schema. A postgres DSN in the config wins over the sqlite path.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	if cfg.URL != "" {
		dialector = postgres.Open(cfg.URL)
	} else {
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Author{},
		&entities.Material{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.URL != "" {
		log.Printf("Database initialized (postgres)")
	} else {
		log.Printf("Database initialized at %s", cfg.Path)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
