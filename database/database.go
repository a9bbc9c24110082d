package database

import (
	"fmt"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the PostgreSQL connection pool used by every repository.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)

	gormLogLevel := logger.Warn
	if cfg.Server.GinMode == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.New(&log.Logger, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Database.Host).Msg("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Connected to database")
	return db, nil
}

// inProgressIndex keeps at most one live IN_PROGRESS attempt per (test, user).
const inProgressIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_in_progress_attempt
ON test_attempts (test_id, user_id)
WHERE status = 'IN_PROGRESS' AND deleted_at IS NULL`

// legacyUniqueIndexes covered soft-deleted rows too; the live-row partial
// indexes on the models replace them.
const legacyUniqueIndexes = `DROP INDEX IF EXISTS idx_specializations_name, idx_specializations_slug, idx_users_email`

// AutoMigrate creates or updates the schema and seeds the fixed role set.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Role{},
		&model.Specialization{},
		&model.User{},
		&model.Profile{},
		&model.Test{},
		&model.Question{},
		&model.AnswerOption{},
		&model.TestAttempt{},
		&model.UserAnswer{},
		&model.AnswerReview{},
		&model.LearningMaterial{},
		&model.TestInvitation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(inProgressIndex).Error; err != nil {
			log.Error().Err(err).Msg("Failed to create in-progress attempt index")
			return err
		}
		if err := db.Exec(legacyUniqueIndexes).Error; err != nil {
			log.Error().Err(err).Msg("Failed to drop legacy unique indexes")
			return err
		}
	}

	if err := SeedRoles(db); err != nil {
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedRoles inserts the fixed roles, leaving existing rows untouched.
func SeedRoles(db *gorm.DB) error {
	roles := make([]model.Role, 0, len(model.RoleNames))
	for _, name := range model.RoleNames {
		roles = append(roles, model.Role{Name: name})
	}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&roles).Error; err != nil {
		log.Error().Err(err).Msg("Failed to seed roles")
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
