package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/updates"
)

func (s *Server) handlePostUpdate(c *gin.Context) {
	var req struct {
		TaskID uint   `json:"task_id"`
		Text   string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := updates.Post(s.db, req.TaskID, req.Text); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListUpdates(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	rows, err := updates.ListForTask(s.db, taskID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleUpdatesFeed(c *gin.Context) {
	rows, err := updates.Feed(s.db)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleAddComment(c *gin.Context) {
	var req struct {
		UpdateID uint   `json:"update_id"`
		Text     string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := updates.AddComment(s.db, req.UpdateID, currentClaims(c).UserID, req.Text); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListComments(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	rows, err := updates.ListComments(s.db, updateID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEditComment(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := updates.EditComment(s.db, commentID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	if err := updates.DeleteComment(s.db, commentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleToggleReaction(c *gin.Context) {
	var req struct {
		UpdateID     uint   `json:"update_id"`
		ReactionType string `json:"reaction_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := updates.ToggleReaction(s.db, req.UpdateID, currentClaims(c).UserID, req.ReactionType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCountReactions(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	rows, err := updates.CountReactions(s.db, updateID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleUserReaction(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	reaction, err := updates.UserReaction(s.db, updateID, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction_type": reaction})
}

func (s *Server) handleRemoveReaction(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	if err := updates.RemoveReaction(s.db, updateID, currentClaims(c).UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCountLikes(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	count, err := updates.CountLikes(s.db, updateID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) handleToggleLike(c *gin.Context) {
	updateID, ok := pathID(c, "update_id")
	if !ok {
		return
	}
	result, err := updates.ToggleLike(s.db, updateID, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
