package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
)

func TestDetectClient(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		browser string
	}{
		{"edge", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36 Edg/120.0", "Edge"},
		{"chrome", "Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0 Safari/537.36", "Chrome"},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox"},
		{"safari", "Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", "Safari"},
		{"unknown", "curl/8.0.1", "Unknown Browser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, browser := DetectClient(tt.ua)
			if browser != tt.browser {
				t.Errorf("browser = %q, want %q", browser, tt.browser)
			}
		})
	}
}

func TestRecordAndListSessions(t *testing.T) {
	db := openTestDB(t)

	s, err := RecordSession(db, 1, "tok-1", SessionInfo{
		Device: "Generic Linux chrome", Browser: "Chrome", IPAddress: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if !s.IsActive {
		t.Error("new session should be active")
	}

	sessions, err := ListSessions(db, 1)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Browser != "Chrome" {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestLogoutSession_OwnershipEnforced(t *testing.T) {
	db := openTestDB(t)
	s, err := RecordSession(db, 1, "tok-1", SessionInfo{})
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	// A different user's session id reads as not found.
	if err := LogoutSession(db, 2, s.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("cross-user logout: error = %v, want not found", err)
	}

	if err := LogoutSession(db, 1, s.ID); err != nil {
		t.Fatalf("LogoutSession: %v", err)
	}
	var reloaded models.Session
	db.First(&reloaded, s.ID)
	if reloaded.IsActive {
		t.Error("session still active after logout")
	}
}

func TestLogoutOthers_KeepsCurrent(t *testing.T) {
	db := openTestDB(t)
	if _, err := RecordSession(db, 1, "tok-current", SessionInfo{}); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if _, err := RecordSession(db, 1, "tok-other", SessionInfo{}); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	if err := LogoutOthers(db, 1, "tok-current"); err != nil {
		t.Fatalf("LogoutOthers: %v", err)
	}

	var current, other models.Session
	db.Where("session_token = ?", "tok-current").First(&current)
	db.Where("session_token = ?", "tok-other").First(&other)
	if !current.IsActive {
		t.Error("current session was logged out")
	}
	if other.IsActive {
		t.Error("other session still active")
	}
}

func TestSweepInactive(t *testing.T) {
	db := openTestDB(t)
	stale, err := RecordSession(db, 1, "tok-stale", SessionInfo{})
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if _, err := RecordSession(db, 1, "tok-fresh", SessionInfo{}); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	db.Model(&models.Session{}).Where("id = ?", stale.ID).
		Update("last_activity", time.Now().Add(-3*time.Hour))

	n, err := SweepInactive(db, 2*time.Hour)
	if err != nil {
		t.Fatalf("SweepInactive: %v", err)
	}
	if n != 1 {
		t.Errorf("swept = %d, want 1", n)
	}

	var reloaded models.Session
	db.First(&reloaded, stale.ID)
	if reloaded.IsActive {
		t.Error("stale session still active")
	}
}

func TestPreferences_DefaultsThenUpsert(t *testing.T) {
	db := openTestDB(t)

	prefs, err := GetPreferences(db, 1)
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if prefs.Language != "en" || prefs.FirstDayOfWeek != "monday" {
		t.Errorf("defaults = %+v", prefs)
	}

	saved := *prefs
	saved.Language = "de"
	if err := SavePreferences(db, saved); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	saved.Language = "fr"
	if err := SavePreferences(db, saved); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	reloaded, err := GetPreferences(db, 1)
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if reloaded.Language != "fr" {
		t.Errorf("language = %q, want fr", reloaded.Language)
	}

	var count int64
	db.Model(&models.UserPreferences{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1 (upsert)", count)
	}
}

func TestSavePreferences_AllFieldsRequired(t *testing.T) {
	db := openTestDB(t)
	prefs := DefaultPreferences(1)
	prefs.Timezone = ""
	if err := SavePreferences(db, prefs); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestWorkingStatus_DefaultAndUpsert(t *testing.T) {
	db := openTestDB(t)

	ws, err := GetWorkingStatus(db, 1)
	if err != nil {
		t.Fatalf("GetWorkingStatus: %v", err)
	}
	if ws.Status != "in-office" {
		t.Errorf("default status = %q", ws.Status)
	}

	saved, err := SaveWorkingStatus(db, models.WorkingStatus{
		UserID: 1, Status: "remote", StartDate: "2026-08-28", EndDate: "2026-08-30",
	})
	if err != nil {
		t.Fatalf("SaveWorkingStatus: %v", err)
	}
	if saved.Status != "remote" {
		t.Errorf("status = %q", saved.Status)
	}
}
