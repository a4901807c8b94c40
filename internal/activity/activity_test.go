package activity

import (
	"errors"
	"testing"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.ActivityLog{},
		&models.Task{},
		&models.User{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func str(s string) *string { return &s }

func TestAppend_MissingFields(t *testing.T) {
	db := openTestDB(t)

	_, err := Append(db, Entry{TaskID: 1, ActionType: models.ActionStatusChange})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestAppend_AllowsDuplicates(t *testing.T) {
	db := openTestDB(t)

	e := Entry{
		TaskID:     1,
		ActionType: models.ActionStatusChange,
		FieldName:  "status",
		OldValue:   str("Next"),
		NewValue:   str("Done"),
		UserID:     2,
	}
	if _, err := Append(db, e); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if _, err := Append(db, e); err != nil {
		t.Fatalf("second append: %v", err)
	}

	var count int64
	db.Model(&models.ActivityLog{}).Count(&count)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestListForTask_NewestFirstWithUser(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Username: "ann", Email: "ann@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	for _, action := range []string{models.ActionTaskCreated, models.ActionStatusChange} {
		if _, err := Append(db, Entry{
			TaskID: 5, ActionType: action, FieldName: "item", UserID: user.ID,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := ListForTask(db, 5)
	if err != nil {
		t.Fatalf("ListForTask: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// id DESC breaks the tie when timestamps are equal.
	if entries[0].ActionType != models.ActionStatusChange {
		t.Errorf("first entry = %q, want status change", entries[0].ActionType)
	}
	if entries[0].Username == nil || *entries[0].Username != "ann" {
		t.Errorf("username = %v", entries[0].Username)
	}
}

func TestListForTask_MissingUserYieldsNull(t *testing.T) {
	db := openTestDB(t)
	if _, err := Append(db, Entry{
		TaskID: 5, ActionType: models.ActionTaskCreated, FieldName: "item", UserID: 99,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := ListForTask(db, 5)
	if err != nil {
		t.Fatalf("ListForTask: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Username != nil {
		t.Errorf("username = %v, want nil", *entries[0].Username)
	}
}

func TestListForWorkspace_FiltersByBoard(t *testing.T) {
	db := openTestDB(t)
	t1 := models.Task{Item: "on board 1", WorkplaceID: 1}
	t2 := models.Task{Item: "on board 2", WorkplaceID: 2}
	if err := db.Create(&t1).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&t2).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, id := range []uint{t1.ID, t2.ID} {
		if _, err := Append(db, Entry{
			TaskID: id, ActionType: models.ActionTaskCreated, FieldName: "item",
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := ListForWorkspace(db, 1)
	if err != nil {
		t.Fatalf("ListForWorkspace: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].TaskName == nil || *entries[0].TaskName != "on board 1" {
		t.Errorf("task name = %v", entries[0].TaskName)
	}

	all, err := ListForWorkspace(db, 0)
	if err != nil {
		t.Fatalf("ListForWorkspace all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all entries = %d, want 2", len(all))
	}
}
