// Command seed cria o admin inicial, dois clientes e as quadras de
// exemplo. Pode rodar mais de uma vez: e-mails já cadastrados são ignorados.
package main

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/court-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/court-scheduler/internal/db"
	"github.com/BruksfildServices01/court-scheduler/internal/logger"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.New(cfg.LogLevel, cfg.AppEnv)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// ================== USERS ==================
	users := []struct {
		name, email, password, role string
	}{
		{"Administrador", "admin@tennisclub.local", "admin123", models.RoleAdmin},
		{"Ana Souza", "ana@tennisclub.local", "client123", models.RoleClient},
		{"Bruno Lima", "bruno@tennisclub.local", "client123", models.RoleClient},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}

		user := models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
		if res.Error != nil {
			log.Fatal().Err(res.Error).Str("email", u.email).Msg("failed to create user")
		}
		log.Info().
			Str("email", u.email).
			Str("role", u.role).
			Bool("created", res.RowsAffected > 0).
			Msg("user seeded")
	}

	// ================== COURTS ==================
	var count int64
	if err := db.Model(&models.Court{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to count courts")
	}
	if count > 0 {
		log.Info().Int64("courts", count).Msg("courts already present, skipping")
		return
	}

	courts := []models.Court{
		{Name: "Quadra Central", Description: "Saibro, coberta", PricePerHour: 120, Active: true},
		{Name: "Quadra 2", Description: "Rápida, iluminada", PricePerHour: 80, Active: true},
		{Name: "Quadra 3", Description: "Saibro", PricePerHour: 60.5, Active: true},
	}
	if err := db.Create(&courts).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create courts")
	}

	log.Info().Int("courts", len(courts)).Msg("seed finished")
}
