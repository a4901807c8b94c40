package task

import (
	"errors"
	"testing"
	"time"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{name: "plain date", in: "2026-03-05", want: "2026-03-05"},
		{name: "rfc3339", in: "2026-03-05T23:15:00Z", want: "2026-03-05"},
		{name: "rfc3339 with offset", in: "2026-03-06T01:00:00+02:00", want: "2026-03-05"},
		{name: "empty clears", in: "", wantNil: true},
		{name: "garbage", in: "next tuesday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDueDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Fatalf("error = %v, want validation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDueDate: %v", err)
			}
			if tt.wantNil {
				if d != nil {
					t.Fatalf("got %v, want nil", d)
				}
				return
			}
			if d.String() != tt.want {
				t.Errorf("String() = %q, want %q", d.String(), tt.want)
			}
		})
	}
}

func TestDueDate_EqualsStored(t *testing.T) {
	d, _ := ParseDueDate("2026-03-05")

	stored := timeMustParse(t, time.RFC3339, "2026-03-05T18:00:00Z")
	if !d.equalsStored(&stored) {
		t.Error("same calendar day should compare equal")
	}

	other := timeMustParse(t, time.RFC3339, "2026-03-06T00:00:00Z")
	if d.equalsStored(&other) {
		t.Error("different days should compare unequal")
	}

	var nilDate *DueDate
	if !nilDate.equalsStored(nil) {
		t.Error("nil vs nil should compare equal")
	}
	if nilDate.equalsStored(&stored) {
		t.Error("nil vs set should compare unequal")
	}
}

func TestTrackedChanges_Order(t *testing.T) {
	prev := models.Task{
		Item:          "old item",
		StatusLabel:   "Next",
		PriorityLabel: "Low",
	}
	due, _ := ParseDueDate("2026-01-01")
	changes := TrackedChanges(prev, Fields{
		Item:          "new item",
		StatusLabel:   "Done",
		PriorityLabel: "High",
		DueDate:       due,
	})
	if len(changes) != 4 {
		t.Fatalf("changes = %d, want 4", len(changes))
	}
	wantActions := []string{
		models.ActionStatusChange,
		models.ActionPriorityChange,
		models.ActionTaskUpdated,
		models.ActionDueDateChange,
	}
	for i, want := range wantActions {
		if changes[i].ActionType != want {
			t.Errorf("change %d = %q, want %q", i, changes[i].ActionType, want)
		}
	}
}

func TestTrackedChanges_UntrackedFieldsIgnored(t *testing.T) {
	prev := models.Task{Item: "x", Developer: "ann", Section: "Next"}
	changes := TrackedChanges(prev, Fields{
		Item:      "x",
		Developer: "bea",
		Section:   "Completed",
	})
	if len(changes) != 0 {
		t.Errorf("changes = %+v, want none", changes)
	}
}

func TestTrackedChanges_DueDateCleared(t *testing.T) {
	stored := timeMustParse(t, time.RFC3339, "2026-01-01T00:00:00Z")
	prev := models.Task{Item: "x", DueDate: &stored}

	changes := TrackedChanges(prev, Fields{Item: "x", DueDate: nil})
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	ch := changes[0]
	if ch.ActionType != models.ActionDueDateChange {
		t.Errorf("action = %q", ch.ActionType)
	}
	if ch.OldValue == nil || *ch.OldValue != "2026-01-01" {
		t.Errorf("old value = %v", ch.OldValue)
	}
	if ch.NewValue != nil {
		t.Errorf("new value = %v, want nil", *ch.NewValue)
	}
}
