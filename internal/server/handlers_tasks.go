package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/activity"
	"github.com/pinboardhq/pinboard/internal/notify"
	"github.com/pinboardhq/pinboard/internal/task"
)

// taskRequest is the JSON body for task create and update. Update has
// full-row semantics: every mutable field is written as submitted.
type taskRequest struct {
	Item          string `json:"item"`
	Developer     string `json:"developer"`
	Support       string `json:"support"`
	RequestedBy   string `json:"requested_by"`
	StatusLabel   string `json:"status_label"`
	StatusColor   string `json:"status_color"`
	PriorityLabel string `json:"priority_label"`
	PriorityColor string `json:"priority_color"`
	Section       string `json:"section"`
	WorkplaceID   uint   `json:"workplace_id"`
	DueDate       string `json:"due_date"`
}

func (r taskRequest) fields() (task.Fields, error) {
	due, err := task.ParseDueDate(r.DueDate)
	if err != nil {
		return task.Fields{}, err
	}
	return task.Fields{
		Item:          r.Item,
		Developer:     r.Developer,
		Support:       r.Support,
		RequestedBy:   r.RequestedBy,
		StatusLabel:   r.StatusLabel,
		StatusColor:   r.StatusColor,
		PriorityLabel: r.PriorityLabel,
		PriorityColor: r.PriorityColor,
		Section:       r.Section,
		WorkplaceID:   r.WorkplaceID,
		DueDate:       due,
	}, nil
}

func (s *Server) handleListTasks(c *gin.Context) {
	filters := task.ListFilters{Section: c.Query("section")}
	if raw := c.Query("workplace_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "workplace_id must be numeric"})
			return
		}
		filters.WorkplaceID = uint(id)
	}

	tasks, err := task.List(s.db, filters)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := task.Get(s.db, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := req.fields()
	if err != nil {
		fail(c, err)
		return
	}

	claims := currentClaims(c)
	t, err := task.Create(s.db, fields, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	s.notifyChange(c, t.Item, activity.Entry{
		TaskID:     t.ID,
		ActionType: "task_created",
		FieldName:  "item",
		NewValue:   &t.Item,
		UserID:     claims.UserID,
	})
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := req.fields()
	if err != nil {
		fail(c, err)
		return
	}

	claims := currentClaims(c)
	t, changes, err := task.Update(s.db, id, fields, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	for _, ch := range changes {
		s.notifyChange(c, t.Item, activity.Entry{
			TaskID:     t.ID,
			ActionType: ch.ActionType,
			FieldName:  ch.FieldName,
			OldValue:   ch.OldValue,
			NewValue:   ch.NewValue,
			UserID:     claims.UserID,
		})
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := task.Delete(s.db, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var req struct {
		OrderedIDs []uint `json:"orderedIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderedIds must be an array"})
		return
	}
	if err := task.Reorder(s.db, req.OrderedIDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// notifyChange forwards an audit event to the configured chat
// destinations. Best effort: a delivery failure never fails the request.
func (s *Server) notifyChange(c *gin.Context, taskItem string, e activity.Entry) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(c.Request.Context(), notify.FromEntry(taskItem, e)); err != nil {
		log.Printf("server: notify: %v", err)
	}
}
