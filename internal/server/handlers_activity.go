package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/activity"
)

func (s *Server) handleAppendActivity(c *gin.Context) {
	var req struct {
		TaskID     uint    `json:"task_id"`
		ActionType string  `json:"action_type"`
		FieldName  string  `json:"field_name"`
		OldValue   *string `json:"old_value"`
		NewValue   *string `json:"new_value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := activity.Append(s.db, activity.Entry{
		TaskID:     req.TaskID,
		ActionType: req.ActionType,
		FieldName:  req.FieldName,
		OldValue:   req.OldValue,
		NewValue:   req.NewValue,
		UserID:     currentClaims(c).UserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleListTaskActivity(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	entries, err := activity.ListForTask(s.db, taskID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleListWorkspaceActivity(c *gin.Context) {
	var workspaceID uint
	if raw := c.Query("workspace_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id must be numeric"})
			return
		}
		workspaceID = uint(id)
	}

	entries, err := activity.ListForWorkspace(s.db, workspaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
