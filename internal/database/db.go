package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs auto-migration for all catalog and account models.
// Split out of NewConnection so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Controller{},
		&model.Platform{},
		&model.FunctionalNeed{},
		&model.ControllerPlatform{},
		&model.ControllerNeed{},
		&model.UserController{},
	)
}

// SeedPlatforms lists the reference platforms controllers can link to.
var SeedPlatforms = []string{
	"PC",
	"PlayStation",
	"Xbox",
	"Nintendo Switch",
	"Mobile",
}

// SeedFunctionalNeeds lists the reference functional needs. The names
// are internal identifiers; the view layer maps them to friendly labels.
var SeedFunctionalNeeds = []string{
	"Limited Fine Motor Control",
	"Weak Grip",
	"Single-Handed Use",
	"Limited Reach",
	"Quick Fatigue",
	"Customisable Inputs",
	"Large Buttons Needed",
	"Repetitive Action Difficult",
	"Head/Mouth Control",
	"Controller Mounting Needed",
}

// SeedReferenceData upserts the fixed platform and functional-need
// reference tables. Controllers may only link to names present here.
func SeedReferenceData(db *gorm.DB) error {
	for _, name := range SeedPlatforms {
		var existing model.Platform
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&model.Platform{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	for _, name := range SeedFunctionalNeeds {
		var existing model.FunctionalNeed
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&model.FunctionalNeed{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
