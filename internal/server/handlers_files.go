package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/files"
	"github.com/pinboardhq/pinboard/internal/models"
)

func (s *Server) handleUploadFile(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.PostForm("task_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id must be numeric"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer src.Close()

	filename, path, size, err := s.store.Save(header.Filename, header.Size, src)
	if err != nil {
		fail(c, err)
		return
	}

	record, err := files.Record(s.db, models.TaskFile{
		TaskID:       uint(taskID),
		Filename:     filename,
		OriginalName: header.Filename,
		FilePath:     path,
		Description:  c.PostForm("description"),
		FileSize:     size,
	})
	if err != nil {
		s.store.Remove(path)
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) handleListFiles(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	rows, err := files.ListForTask(s.db, taskID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleDownloadAll(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	rows, err := files.ListForTask(s.db, taskID)
	if err != nil {
		fail(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no files found for this task"})
		return
	}
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=task-%d-files.zip", taskID))
	if err := files.WriteZip(s.db, taskID, c.Writer); err != nil {
		// Headers are already out; all we can do is log.
		_ = c.Error(err)
	}
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}
	if err := files.Delete(s.db, s.store, fileID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleFilesFeed(c *gin.Context) {
	rows, err := files.Feed(s.db)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
