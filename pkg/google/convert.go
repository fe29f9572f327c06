package google

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/taskbot/pkg/overdue"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"google.golang.org/api/calendar/v3"
)

// KeyProperty is the private extended property holding the task key.
const KeyProperty = "taskbot_key"

const defaultDuration = 30 * time.Minute

// ErrNotSchedulable is returned for tasks that cannot be placed on a calendar:
// todos, and timed tasks whose time is free text.
var ErrNotSchedulable = errors.New("task has no calendar time")

// Calendar color ids per task type.
var colorIDs = map[string]string{
	task.DEADLINE: "11", // tomato
	task.EVENT:    "9",  // blueberry
	task.DOAFTER:  "5",  // banana
}

var typeNames = map[string]string{
	task.DEADLINE: "Deadline",
	task.EVENT:    "Event",
	task.DOAFTER:  "Do after",
}

// ConvertTaskToEvent builds the calendar event mirroring t. Times with a
// clock become 30 minute events, bare dates become all-day events.
func ConvertTaskToEvent(t task.Task, now time.Time) (*calendar.Event, error) {
	if t == nil {
		return nil, fmt.Errorf("could not convert nil task")
	}
	if t.Tag() == task.TODO {
		return nil, fmt.Errorf("%w: %s", ErrNotSchedulable, t.Description())
	}
	start, hasClock, ok := task.ParseTime(t.Time())
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a date", ErrNotSchedulable, t.Time())
	}

	prefix := ""
	if t.Done() {
		prefix = "✓"
	} else if overdue.IsOverdue(t, now) {
		prefix = "!"
	}
	summary := t.Description()
	if prefix != "" {
		summary = fmt.Sprintf("%s %s", prefix, t.Description())
	}

	key := task.Key(t)
	var desc strings.Builder
	fmt.Fprintf(&desc, "Type: %s\n", typeNames[t.Tag()])
	if t.Done() {
		desc.WriteString("Status: done\n")
	} else {
		desc.WriteString("Status: pending\n")
	}
	fmt.Fprintf(&desc, "Key: %s\n", key)

	event := &calendar.Event{
		Summary:     summary,
		Description: desc.String(),
		ColorId:     colorIDs[t.Tag()],
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				KeyProperty: key,
			},
		},
	}
	if hasClock {
		event.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: start.Add(defaultDuration).Format(time.RFC3339)}
	} else {
		event.Start = &calendar.EventDateTime{Date: start.Format("2006-01-02")}
		event.End = &calendar.EventDateTime{Date: start.AddDate(0, 0, 1).Format("2006-01-02")}
	}
	return event, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when they already match.
func EventNeedsUpdate(existing, target *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}

	sameStart, err := sameTime(existing.Start, target.Start)
	if err != nil {
		return nil, err
	}
	sameEnd, err := sameTime(existing.End, target.End)
	if err != nil {
		return nil, err
	}
	if !sameStart || !sameEnd {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

func sameTime(a, b *calendar.EventDateTime) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.Date != "" || b.Date != "" {
		return a.Date == b.Date, nil
	}
	at, err := time.Parse(time.RFC3339, a.DateTime)
	if err != nil {
		return false, err
	}
	bt, err := time.Parse(time.RFC3339, b.DateTime)
	if err != nil {
		return false, err
	}
	return at.Equal(bt), nil
}
