package task

import (
	"fmt"
	"time"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
)

// dueDateLayout is the canonical encoding for due dates in audit values.
const dueDateLayout = "2006-01-02"

// DueDate is a calendar day. Normalizing to a day before storing and
// comparing keeps the diff deterministic across timestamp encodings of the
// same date.
type DueDate struct {
	t time.Time
}

// ParseDueDate accepts a YYYY-MM-DD string or an RFC 3339 timestamp and
// truncates it to the calendar day in UTC.
func ParseDueDate(s string) (*DueDate, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("task: %w: due_date %q is not a date", apperr.ErrValidation, s)
		}
	}
	return NewDueDate(t), nil
}

// NewDueDate truncates t to its UTC calendar day.
func NewDueDate(t time.Time) *DueDate {
	u := t.UTC()
	return &DueDate{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// String renders the canonical YYYY-MM-DD form.
func (d *DueDate) String() string {
	if d == nil {
		return ""
	}
	return d.t.Format(dueDateLayout)
}

// timePtr returns the underlying day as a *time.Time for storage, nil for
// an unset date.
func (d *DueDate) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.t
	return &t
}

func (d *DueDate) equalsStored(stored *time.Time) bool {
	if d == nil && stored == nil {
		return true
	}
	if d == nil || stored == nil {
		return false
	}
	return NewDueDate(*stored).t.Equal(d.t)
}

// Change is one tracked field difference produced by a task update.
type Change struct {
	ActionType string
	FieldName  string
	OldValue   *string
	NewValue   *string
}

// TrackedChanges compares the previously stored row against the submitted
// fields over the tracked set {status_label, priority_label, item,
// due_date}. Fields outside this set are saved but never audited.
func TrackedChanges(prev models.Task, next Fields) []Change {
	var changes []Change

	if prev.StatusLabel != next.StatusLabel {
		changes = append(changes, Change{
			ActionType: models.ActionStatusChange,
			FieldName:  "status",
			OldValue:   strPtr(prev.StatusLabel),
			NewValue:   strPtr(next.StatusLabel),
		})
	}
	if prev.PriorityLabel != next.PriorityLabel {
		changes = append(changes, Change{
			ActionType: models.ActionPriorityChange,
			FieldName:  "priority",
			OldValue:   strPtr(prev.PriorityLabel),
			NewValue:   strPtr(next.PriorityLabel),
		})
	}
	if prev.Item != next.Item {
		changes = append(changes, Change{
			ActionType: models.ActionTaskUpdated,
			FieldName:  "item",
			OldValue:   strPtr(prev.Item),
			NewValue:   strPtr(next.Item),
		})
	}
	if !next.DueDate.equalsStored(prev.DueDate) {
		changes = append(changes, Change{
			ActionType: models.ActionDueDateChange,
			FieldName:  "due_date",
			OldValue:   dueDateValue(prev.DueDate),
			NewValue:   dueDateStr(next.DueDate),
		})
	}
	return changes
}

func dueDateValue(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return strPtr(NewDueDate(*t).String())
}

func dueDateStr(d *DueDate) *string {
	if d == nil {
		return nil
	}
	return strPtr(d.String())
}
