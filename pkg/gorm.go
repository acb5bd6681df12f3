package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/grade-analytics-service/internal/config"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.IsProduction() {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// MigrateDatabase creates or updates every table the service owns,
// including the unique indexes the cell upserts rely on.
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.AcademicYear{},
		&models.Class{},
		&models.Subject{},
		&models.Student{},
		&models.Grade{},
		&models.GradeDistribution{},
		&models.StudentPerformance{},
		&models.ReportTemplate{},
		&models.GeneratedReport{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
