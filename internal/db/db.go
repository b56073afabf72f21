package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/BruksfildServices01/court-scheduler/internal/config"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

// NewDB conecta no Postgres quando DATABASE_URL é postgres://, senão usa
// SQLite (desenvolvimento local), e aplica as migrações.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		PrepareStmt: true,
	}
	if !cfg.IsDev() {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := Connect(cfg.DBUrl, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Connect(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info().Msg("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	log.Info().Str("dsn", dsn).Msg("using SQLite for local development")
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		gormCfg,
	)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Court{},
		&models.User{},
		&models.Booking{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// uma única reserva confirmada por quadra e horário
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_confirmed_slot
        ON reservations (court_id, slot_at)
        WHERE status = 'CONFIRMADA'
    `).Error; err != nil {
		return fmt.Errorf("failed to create reservation index: %w", err)
	}

	return nil
}
