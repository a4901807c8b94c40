package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all API routes on the gin router.
func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	// Stored uploads are served directly.
	router.Static("/uploads", s.cfg.Uploads.Dir)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/forgot", s.handleForgotPassword)
		authGroup.POST("/reset", s.handleResetPassword)
		authGroup.GET("/me", s.requireAuth, s.handleMe)
		authGroup.PUT("/profile", s.requireAuth, s.handleUpdateProfile)
		authGroup.PUT("/email", s.requireAuth, s.handleChangeEmail)
		authGroup.PUT("/change-password", s.requireAuth, s.handleChangePassword)
		authGroup.POST("/profile-picture", s.requireAuth, s.handleProfilePicture)
		authGroup.GET("/working-status", s.requireAuth, s.handleGetWorkingStatus)
		authGroup.PUT("/working-status", s.requireAuth, s.handlePutWorkingStatus)
	}

	// Tasks and the audit log require a verified caller so audit entries
	// carry the real acting identity.
	api.GET("/tasks", s.handleListTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.POST("/tasks", s.requireAuth, s.handleCreateTask)
	api.POST("/tasks/reorder", s.requireAuth, s.handleReorderTasks)
	api.PUT("/tasks/:id", s.requireAuth, s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.requireAuth, s.handleDeleteTask)

	api.GET("/activity_logs", s.handleListWorkspaceActivity)
	api.GET("/activity_logs/:task_id", s.handleListTaskActivity)
	api.POST("/activity_logs", s.requireAuth, s.handleAppendActivity)

	api.GET("/workplaces", s.handleListWorkplaces)
	api.POST("/workplaces", s.handleCreateWorkplace)
	api.PUT("/workplaces/:id", s.handleRenameWorkplace)
	api.DELETE("/workplaces/:id", s.handleDeleteWorkplace)
	api.GET("/all_boards", s.handleAllBoards)

	api.GET("/favorites", s.requireAuth, s.handleListFavorites)
	api.POST("/favorites", s.requireAuth, s.handleAddFavorite)
	api.DELETE("/favorites/:workspace_id", s.requireAuth, s.handleRemoveFavorite)

	api.GET("/section-order", s.handleGetSectionOrder)
	api.POST("/section-order", s.handleSaveSectionOrder)

	api.POST("/task_updates", s.handlePostUpdate)
	api.GET("/task_updates/:task_id", s.handleListUpdates)
	api.GET("/all_updates", s.handleUpdatesFeed)

	api.POST("/update_comments", s.requireAuth, s.handleAddComment)
	api.GET("/update_comments/:update_id", s.handleListComments)
	api.PUT("/update_comments/:comment_id", s.requireAuth, s.handleEditComment)
	api.DELETE("/update_comments/:comment_id", s.requireAuth, s.handleDeleteComment)

	api.POST("/update_reactions", s.requireAuth, s.handleToggleReaction)
	api.GET("/update_reactions/:update_id", s.handleCountReactions)
	api.GET("/update_reactions/:update_id/user", s.requireAuth, s.handleUserReaction)
	api.DELETE("/update_reactions/:update_id", s.requireAuth, s.handleRemoveReaction)

	api.GET("/update_likes/:update_id", s.handleCountLikes)
	api.POST("/update_likes/:update_id", s.requireAuth, s.handleToggleLike)

	api.POST("/task_files", s.handleUploadFile)
	api.GET("/task_files/:task_id", s.handleListFiles)
	api.GET("/task_files/:task_id/download-all", s.handleDownloadAll)
	api.DELETE("/task_files/:file_id", s.handleDeleteFile)
	api.GET("/all_files", s.handleFilesFeed)

	api.GET("/users", s.handleListUsers)
	api.GET("/user_preferences", s.requireAuth, s.handleGetPreferences)
	api.PUT("/user_preferences", s.requireAuth, s.handlePutPreferences)

	api.GET("/session_history", s.requireAuth, s.handleListSessions)
	api.DELETE("/session_history/logout-all", s.requireAuth, s.handleLogoutAll)
	api.DELETE("/session_history/:session_id", s.requireAuth, s.handleLogoutSession)
}
