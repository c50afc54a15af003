package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
)

// ConnectDatabase opens a PostgreSQL connection for the given configuration.
// The handle is returned to the caller and passed to whatever needs it;
// there is intentionally no package-level database instance.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// MigrateDatabase runs auto-migration for every persisted entity.
func MigrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Client{},
		&models.Vehicle{},
		&models.Estimate{},
		&models.Appointment{},
		&models.Message{},
		&models.OngoingService{},
		&models.VehicleAssessment{},
		&models.ServiceReport{},
	)
}
