// Package testutil abre bancos SQLite em memória já migrados para os
// testes de repositório, use case e handler, pelo mesmo db.Connect do
// ambiente local.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/court-scheduler/internal/db"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:court_scheduler_%s?mode=memory&cache=shared", name)

	// mesmo caminho do ambiente local (driver modernc, sem CGO)
	gdb, err := db.Connect(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func CreateCourt(t *testing.T, gdb *gorm.DB, name string, pricePerHour float64) *models.Court {
	t.Helper()

	court := &models.Court{Name: name, PricePerHour: pricePerHour, Active: true}
	if err := gdb.Create(court).Error; err != nil {
		t.Fatalf("failed to create court: %v", err)
	}
	return court
}

func CreateUser(t *testing.T, gdb *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleClient,
		Active:       true,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func CreateBooking(
	t *testing.T,
	gdb *gorm.DB,
	courtID, userID uint,
	date, start, end, status string,
) *models.Booking {
	t.Helper()

	b := &models.Booking{
		CourtID:     courtID,
		UserID:      userID,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	}
	if err := gdb.Omit("Court", "User").Create(b).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return b
}
