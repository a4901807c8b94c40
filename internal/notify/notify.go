// Package notify bridges task activity to chat platforms (Slack, Discord).
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/pinboardhq/pinboard/internal/activity"
	"github.com/pinboardhq/pinboard/internal/models"
)

// Event is one activity occurrence formatted for display in chat.
type Event struct {
	Title    string  // headline, e.g. `Task "Fix bug" status changed`
	Body     string  // detail text
	Severity string  // "info", "warning", "success"
	Fields   []Field // key-value metadata pairs
}

// Field is a key-value pair displayed with an event.
type Field struct {
	Name  string
	Value string
}

// Notifier is the interface platform adapters must satisfy.
type Notifier interface {
	// Send delivers one event to the platform.
	Send(ctx context.Context, ev Event) error

	// Close shuts down the adapter connection.
	Close() error
}

// Fanout delivers each event to every configured notifier. A failing
// destination is logged and skipped; notification is best-effort and never
// blocks the mutation that produced the event.
type Fanout struct {
	targets []Notifier
}

// NewFanout builds a Fanout over the given notifiers.
func NewFanout(targets ...Notifier) *Fanout {
	return &Fanout{targets: targets}
}

// Send delivers ev to all targets.
func (f *Fanout) Send(ctx context.Context, ev Event) error {
	for _, t := range f.targets {
		if err := t.Send(ctx, ev); err != nil {
			log.Printf("notify: send failed: %v", err)
		}
	}
	return nil
}

// Close closes all targets.
func (f *Fanout) Close() error {
	for _, t := range f.targets {
		if err := t.Close(); err != nil {
			log.Printf("notify: close failed: %v", err)
		}
	}
	return nil
}

// Len reports how many destinations are configured.
func (f *Fanout) Len() int { return len(f.targets) }

// FromEntry formats an audit entry as a chat event.
func FromEntry(taskItem string, e activity.Entry) Event {
	ev := Event{Severity: "info"}
	switch e.ActionType {
	case models.ActionTaskCreated:
		ev.Title = fmt.Sprintf("Task created: %s", deref(e.NewValue))
		ev.Severity = "success"
	case models.ActionStatusChange:
		ev.Title = fmt.Sprintf("Task %q status: %s → %s", taskItem, deref(e.OldValue), deref(e.NewValue))
	case models.ActionPriorityChange:
		ev.Title = fmt.Sprintf("Task %q priority: %s → %s", taskItem, deref(e.OldValue), deref(e.NewValue))
	case models.ActionDueDateChange:
		ev.Title = fmt.Sprintf("Task %q due date: %s → %s", taskItem, deref(e.OldValue), deref(e.NewValue))
	default:
		ev.Title = fmt.Sprintf("Task %q updated", taskItem)
	}
	ev.Fields = []Field{
		{Name: "Field", Value: e.FieldName},
		{Name: "Action", Value: e.ActionType},
	}
	return ev
}

func deref(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}
