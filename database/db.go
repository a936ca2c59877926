package database

import (
	"fmt"
	"log/slog"
	"time"

	"watchlog/internal/config"
	"watchlog/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	// connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

// Migrate keeps the schema in sync with the models. Also used by the
// test suites against their in-memory databases.
func Migrate(db *gorm.DB) error {
	// the join table is the explicit ReviewGenre model (it has its own
	// id), not the composite-key table gorm would generate
	if err := db.SetupJoinTable(&models.Review{}, "Genres", &models.ReviewGenre{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Status{},
		&models.MediaType{},
		&models.Rating{},
		&models.Genre{},
		&models.Review{},
		&models.ReviewGenre{},
	)
}
