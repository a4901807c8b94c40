package files

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"gorm.io/gorm"
)

// WriteZip streams all of a task's files to w as a zip archive under their
// original names. Files missing from disk are skipped. Returns ErrNotFound
// when the task has no file records at all.
func WriteZip(db *gorm.DB, taskID uint, w io.Writer) error {
	records, err := ListForTask(db, taskID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("files: %w: no files found for this task", apperr.ErrNotFound)
	}

	zw := zip.NewWriter(w)
	for _, rec := range records {
		f, err := os.Open(rec.FilePath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			zw.Close()
			return fmt.Errorf("files: open %s: %w", rec.FilePath, err)
		}
		entry, err := zw.Create(rec.OriginalName)
		if err != nil {
			f.Close()
			zw.Close()
			return fmt.Errorf("files: zip entry %s: %w", rec.OriginalName, err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			zw.Close()
			return fmt.Errorf("files: zip copy %s: %w", rec.OriginalName, err)
		}
		f.Close()
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("files: finalize zip: %w", err)
	}
	return nil
}
