package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/workspace"
)

func (s *Server) handleListWorkplaces(c *gin.Context) {
	wps, err := workspace.List(s.db)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wps)
}

func (s *Server) handleCreateWorkplace(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	wp, err := workspace.Create(s.db, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, wp)
}

func (s *Server) handleRenameWorkplace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	wp, err := workspace.Rename(s.db, id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wp)
}

func (s *Server) handleDeleteWorkplace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := workspace.Delete(s.db, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAllBoards(c *gin.Context) {
	rows, err := workspace.Summaries(s.db)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleListFavorites(c *gin.Context) {
	rows, err := workspace.ListFavorites(s.db, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleAddFavorite(c *gin.Context) {
	var req struct {
		WorkspaceID uint `json:"workspace_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := workspace.AddFavorite(s.db, currentClaims(c).UserID, req.WorkspaceID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	if err := workspace.RemoveFavorite(s.db, currentClaims(c).UserID, workspaceID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

func (s *Server) handleGetSectionOrder(c *gin.Context) {
	workspaceID := queryID(c, "workspace_id")
	order, err := workspace.GetSectionOrder(s.db, workspaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) handleSaveSectionOrder(c *gin.Context) {
	var req struct {
		WorkspaceID uint     `json:"workspace_id"`
		Order       []string `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must be an array"})
		return
	}
	if err := workspace.SaveSectionOrder(s.db, req.WorkspaceID, req.Order); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// queryID parses an optional numeric query parameter, zero when absent or
// malformed.
func queryID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
