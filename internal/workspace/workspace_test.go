package workspace

import (
	"errors"
	"reflect"
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
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Workplace{},
		&models.Favorite{},
		&models.SectionOrder{},
		&models.Task{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestCreateRenameDelete(t *testing.T) {
	db := openTestDB(t)

	wp, err := Create(db, "Engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed, err := Rename(db, wp.ID, "Platform")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "Platform" {
		t.Errorf("name = %q", renamed.Name)
	}

	if err := Delete(db, wp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := Get(db, wp.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete = %v, want not found", err)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	db := openTestDB(t)
	if _, err := Create(db, ""); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestRename_Missing(t *testing.T) {
	db := openTestDB(t)
	if _, err := Rename(db, 99, "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestDelete_KeepsTasks(t *testing.T) {
	db := openTestDB(t)
	wp, err := Create(db, "Engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	task := models.Task{Item: "orphan-to-be", WorkplaceID: wp.ID}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}

	if err := Delete(db, wp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	db.Model(&models.Task{}).Where("workplace_id = ?", wp.ID).Count(&count)
	if count != 1 {
		t.Errorf("tasks remaining = %d, want 1", count)
	}
}

func TestSummaries(t *testing.T) {
	db := openTestDB(t)
	wp, err := Create(db, "Engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, status := range []string{"Completed", "Next", "Next"} {
		if err := db.Create(&models.Task{Item: "t", WorkplaceID: wp.ID, StatusLabel: status}).Error; err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	rows, err := Summaries(db)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	got := rows[0]
	if got.TaskCount != 3 || got.CompletedTasks != 1 || got.ActiveTasks != 2 {
		t.Errorf("summary = %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Favorites
// ---------------------------------------------------------------------------

func TestFavorites_AddListRemove(t *testing.T) {
	db := openTestDB(t)
	wp, err := Create(db, "Engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := AddFavorite(db, 1, wp.ID); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	rows, err := ListFavorites(db, 1)
	if err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Engineering" {
		t.Errorf("rows = %+v", rows)
	}

	if err := RemoveFavorite(db, 1, wp.ID); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	if err := RemoveFavorite(db, 1, wp.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second remove = %v, want not found", err)
	}
}

func TestAddFavorite_DuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	wp, err := Create(db, "Engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := AddFavorite(db, 1, wp.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := AddFavorite(db, 1, wp.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("second add = %v, want conflict", err)
	}
}

func TestAddFavorite_MissingWorkspace(t *testing.T) {
	db := openTestDB(t)
	if err := AddFavorite(db, 1, 99); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

// ---------------------------------------------------------------------------
// Section order
// ---------------------------------------------------------------------------

func TestSectionOrder_DefaultWhenUnset(t *testing.T) {
	db := openTestDB(t)

	order, err := GetSectionOrder(db, 1)
	if err != nil {
		t.Fatalf("GetSectionOrder: %v", err)
	}
	if !reflect.DeepEqual(order, DefaultSectionOrder) {
		t.Errorf("order = %v, want defaults", order)
	}
}

func TestSectionOrder_SaveAndReload(t *testing.T) {
	db := openTestDB(t)
	want := []string{"Completed", "Next", "Priority"}

	if err := SaveSectionOrder(db, 1, want); err != nil {
		t.Fatalf("SaveSectionOrder: %v", err)
	}
	// Saving again replaces, not appends.
	if err := SaveSectionOrder(db, 1, want); err != nil {
		t.Fatalf("second save: %v", err)
	}

	order, err := GetSectionOrder(db, 1)
	if err != nil {
		t.Fatalf("GetSectionOrder: %v", err)
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	var count int64
	db.Model(&models.SectionOrder{}).Where("workspace_id = ?", 1).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestSaveSectionOrder_NilRejected(t *testing.T) {
	db := openTestDB(t)
	if err := SaveSectionOrder(db, 1, nil); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}
