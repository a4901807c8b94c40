package files

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
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
	if err := db.AutoMigrate(&models.TaskFile{}, &models.Task{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), 1, []string{".txt", ".png"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStore_SaveAndRemove(t *testing.T) {
	store := testStore(t)

	filename, path, written, err := store.Save("notes.txt", 5, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != 5 {
		t.Errorf("written = %d, want 5", written)
	}
	if !strings.HasPrefix(filename, "file-") || !strings.HasSuffix(filename, ".txt") {
		t.Errorf("filename = %q", filename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// Removing again is not an error.
	if err := store.Remove(path); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestStore_DisallowedExtension(t *testing.T) {
	store := testStore(t)
	_, _, _, err := store.Save("malware.exe", 5, strings.NewReader("hello"))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestStore_SizeCap(t *testing.T) {
	store := testStore(t)

	// Declared size over the cap is rejected up front.
	_, _, _, err := store.Save("big.txt", store.MaxSize+1, strings.NewReader("x"))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("declared size: error = %v, want validation", err)
	}

	// A lying declared size is caught while streaming.
	big := strings.Repeat("x", int(store.MaxSize)+1)
	_, _, _, err = store.Save("big.txt", 1, strings.NewReader(big))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("streamed size: error = %v, want validation", err)
	}
	entries, _ := os.ReadDir(store.Dir)
	if len(entries) != 0 {
		t.Errorf("partial file left on disk: %v", entries)
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("avatar.PNG") {
		t.Error("PNG should be an image")
	}
	if IsImage("notes.txt") {
		t.Error("txt is not an image")
	}
}

func TestRecordAndDelete(t *testing.T) {
	db := openTestDB(t)
	store := testStore(t)

	filename, path, size, err := store.Save("notes.txt", 5, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := Record(db, models.TaskFile{
		TaskID: 1, Filename: filename, OriginalName: "notes.txt", FilePath: path, FileSize: size,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := ListForTask(db, 1)
	if err != nil {
		t.Fatalf("ListForTask: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	if err := Delete(db, store, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still on disk after delete")
	}
	if _, err := Get(db, rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete = %v, want not found", err)
	}
}

func TestRecord_Validation(t *testing.T) {
	db := openTestDB(t)
	_, err := Record(db, models.TaskFile{TaskID: 1})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestWriteZip(t *testing.T) {
	db := openTestDB(t)
	store := testStore(t)

	for _, name := range []string{"a.txt", "b.txt"} {
		filename, path, size, err := store.Save(name, 4, strings.NewReader("data"))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if _, err := Record(db, models.TaskFile{
			TaskID: 1, Filename: filename, OriginalName: name, FilePath: path, FileSize: size,
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	// A record whose disk file vanished is skipped, not fatal.
	if _, err := Record(db, models.TaskFile{
		TaskID: 1, Filename: "gone", OriginalName: "gone.txt",
		FilePath: filepath.Join(store.Dir, "missing"),
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteZip(db, 1, &buf); err != nil {
		t.Fatalf("WriteZip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	if len(names) != 2 {
		t.Errorf("zip entries = %v, want a.txt and b.txt", names)
	}
}

func TestWriteZip_NoFiles(t *testing.T) {
	db := openTestDB(t)
	var buf bytes.Buffer
	if err := WriteZip(db, 1, &buf); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestFeed_JoinsTask(t *testing.T) {
	db := openTestDB(t)
	task := models.Task{Item: "deploy", StatusLabel: "Next"}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	if _, err := Record(db, models.TaskFile{
		TaskID: task.ID, Filename: "f", OriginalName: "notes.txt", FilePath: "p",
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := Feed(db)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(rows) != 1 || rows[0].TaskName != "deploy" {
		t.Errorf("rows = %+v", rows)
	}
}
