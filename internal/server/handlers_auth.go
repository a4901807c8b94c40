package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/auth"
	"github.com/pinboardhq/pinboard/internal/files"
	"github.com/pinboardhq/pinboard/internal/models"
)

// userView is the public shape of a user returned by auth endpoints.
type userView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Picture     string `json:"picture"`
	Phone       string `json:"phone"`
	MobilePhone string `json:"mobile_phone"`
	Location    string `json:"location"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Picture:     u.Picture,
		Phone:       u.Phone,
		MobilePhone: u.MobilePhone,
		Location:    u.Location,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := auth.Register(s.db, s.issuer, req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": viewOf(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := auth.Login(s.db, s.issuer, req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	device, browser := auth.DetectClient(c.Request.UserAgent())
	if _, err := auth.RecordSession(s.db, user.ID, token, auth.SessionInfo{
		Device:    device,
		Browser:   browser,
		Location:  "Unknown Location",
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": viewOf(user)})
}

func (s *Server) handleForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The reset token is returned to the caller; mailing it is out of
	// scope here.
	token, err := auth.ForgotPassword(s.db, s.issuer, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resetToken": token})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := auth.ResetPassword(s.db, s.issuer, req.Token, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := auth.GetUser(s.db, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(user))
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req struct {
		Username    *string `json:"username"`
		Phone       *string `json:"phone"`
		MobilePhone *string `json:"mobile_phone"`
		Location    *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := auth.UpdateProfile(s.db, currentClaims(c).UserID, auth.ProfilePatch{
		Username:    req.Username,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Location:    req.Location,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(user))
}

func (s *Server) handleChangeEmail(c *gin.Context) {
	var req struct {
		CurrentEmail    string `json:"currentEmail"`
		NewEmail        string `json:"newEmail"`
		CurrentPassword string `json:"currentPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := auth.ChangeEmail(s.db, currentClaims(c).UserID,
		req.CurrentEmail, req.NewEmail, req.CurrentPassword)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(user))
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := auth.ChangePassword(s.db, currentClaims(c).UserID,
		req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (s *Server) handleProfilePicture(c *gin.Context) {
	header, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !files.IsImage(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	src, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer src.Close()

	filename, _, _, err := s.store.Save(header.Filename, header.Size, src)
	if err != nil {
		fail(c, err)
		return
	}

	userID := currentClaims(c).UserID
	old, err := auth.SetPicture(s.db, userID, "uploads/"+filename)
	if err != nil {
		fail(c, err)
		return
	}
	if old != "" {
		s.store.Remove(old)
	}

	user, err := auth.GetUser(s.db, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(user))
}

func (s *Server) handleGetWorkingStatus(c *gin.Context) {
	ws, err := auth.GetWorkingStatus(s.db, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (s *Server) handlePutWorkingStatus(c *gin.Context) {
	var req struct {
		Status                  string `json:"status"`
		StartDate               string `json:"start_date"`
		EndDate                 string `json:"end_date"`
		DisableNotifications    bool   `json:"disable_notifications"`
		DisableOnlineIndication bool   `json:"disable_online_indication"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := auth.SaveWorkingStatus(s.db, models.WorkingStatus{
		UserID:                  currentClaims(c).UserID,
		Status:                  req.Status,
		StartDate:               req.StartDate,
		EndDate:                 req.EndDate,
		DisableNotifications:    req.DisableNotifications,
		DisableOnlineIndication: req.DisableOnlineIndication,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := auth.ListUsers(s.db)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]userView, len(users))
	for i := range users {
		views[i] = viewOf(&users[i])
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetPreferences(c *gin.Context) {
	prefs, err := auth.GetPreferences(s.db, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(c *gin.Context) {
	var req struct {
		Language       string `json:"language"`
		Timezone       string `json:"timezone"`
		TimeFormat     string `json:"time_format"`
		DateFormat     string `json:"date_format"`
		FirstDayOfWeek string `json:"first_day_of_week"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := auth.SavePreferences(s.db, models.UserPreferences{
		UserID:         currentClaims(c).UserID,
		Language:       req.Language,
		Timezone:       req.Timezone,
		TimeFormat:     req.TimeFormat,
		DateFormat:     req.DateFormat,
		FirstDayOfWeek: req.FirstDayOfWeek,
	}); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully"})
}

func (s *Server) handleListSessions(c *gin.Context) {
	sessions, err := auth.ListSessions(s.db, currentClaims(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleLogoutSession(c *gin.Context) {
	sessionID, ok := pathID(c, "session_id")
	if !ok {
		return
	}
	if err := auth.LogoutSession(s.db, currentClaims(c).UserID, sessionID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session logged out successfully"})
}

func (s *Server) handleLogoutAll(c *gin.Context) {
	if err := auth.LogoutOthers(s.db, currentClaims(c).UserID, currentToken(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All other sessions logged out successfully"})
}
