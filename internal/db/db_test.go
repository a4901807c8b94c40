package db

import (
	"testing"

	"github.com/pinboardhq/pinboard/internal/config"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return gdb
}

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		Host: "db.internal", Port: 3307, User: "pb", Password: "pw", Database: "pinboard",
	})
	want := "pb:pw@tcp(db.internal:3307)/pinboard?parseTime=true&charset=utf8mb4"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestAutoMigrate(t *testing.T) {
	gdb := openTestDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, m := range AllModels() {
		if !gdb.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}
}

func TestSeedAdminUser_Idempotent(t *testing.T) {
	gdb := openTestDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	first, err := SeedAdminUser(gdb, "admin", "admin@localhost", "secret")
	if err != nil {
		t.Fatalf("SeedAdminUser: %v", err)
	}
	if first.Password == "secret" {
		t.Error("password stored in plaintext")
	}

	second, err := SeedAdminUser(gdb, "admin", "admin@localhost", "other")
	if err != nil {
		t.Fatalf("second SeedAdminUser: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second seed created a new user: %d != %d", second.ID, first.ID)
	}

	var count int64
	gdb.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("users = %d, want 1", count)
	}
}
