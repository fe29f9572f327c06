package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/taskbot/pkg/index"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// CalendarClient publishes tasks to one Google Calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	logger     *log.Logger
}

func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, logger *log.Logger) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, logger: logger}
}

// SyncSummary counts what a Sync did.
type SyncSummary struct {
	Created   int
	Updated   int
	Unchanged int
	Deleted   int
	Skipped   int
}

func (s SyncSummary) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d deleted, %d skipped",
		s.Created, s.Updated, s.Unchanged, s.Deleted, s.Skipped)
}

// Sync mirrors the timed tasks of list onto the calendar. Events whose task
// no longer exists are deleted. The index is updated but not saved.
func (c *CalendarClient) Sync(ctx context.Context, list *task.List, now time.Time) (SyncSummary, error) {
	var summary SyncSummary
	seen := make(map[string]bool)

	for _, t := range list.All() {
		event, err := ConvertTaskToEvent(t, now)
		if errors.Is(err, ErrNotSchedulable) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, err
		}
		key := task.Key(t)
		if seen[key] {
			summary.Skipped++
			continue
		}
		seen[key] = true

		action, err := c.SyncEvent(ctx, key, event)
		if err != nil {
			return summary, fmt.Errorf("sync %q: %w", t.Description(), err)
		}
		switch action {
		case ActionCreated:
			summary.Created++
		case ActionUpdated:
			summary.Updated++
		default:
			summary.Unchanged++
		}
	}

	if c.index != nil {
		for _, key := range c.index.Keys() {
			if seen[key] {
				continue
			}
			if err := c.DeleteEvent(ctx, c.index.Get(key)); err != nil && !isGone(err) {
				return summary, fmt.Errorf("delete event for removed task: %w", err)
			}
			c.index.Remove(key)
			summary.Deleted++
		}
	}
	return summary, nil
}

type SyncAction int

const (
	ActionUnchanged SyncAction = iota
	ActionCreated
	ActionUpdated
)

// SyncEvent creates the event for key or patches the existing one.
func (c *CalendarClient) SyncEvent(ctx context.Context, key string, event *calendar.Event) (SyncAction, error) {
	var existing *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(key); eventID != "" {
			found, err := c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil {
				c.logger.Debug("indexed event not found, searching", "event", eventID, "err", err)
			} else if found.Status != "cancelled" {
				existing = found
			}
		}
	}

	if existing == nil {
		found, err := c.GetEventByTaskKey(ctx, key)
		if err != nil {
			return ActionUnchanged, fmt.Errorf("error searching for event: %w", err)
		}
		existing = found
	}

	if existing != nil {
		patch, err := EventNeedsUpdate(existing, event)
		if err != nil {
			return ActionUnchanged, fmt.Errorf("could not compare task with its calendar event: %w", err)
		}
		c.setIndex(key, existing.Id)
		if patch == nil {
			return ActionUnchanged, nil
		}
		updated, err := c.PatchEvent(ctx, existing.Id, patch)
		if err != nil {
			return ActionUnchanged, err
		}
		c.setIndex(key, updated.Id)
		return ActionUpdated, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return ActionUnchanged, err
	}
	c.setIndex(key, created.Id)
	return ActionCreated, nil
}

func (c *CalendarClient) setIndex(key, eventID string) {
	if c.index != nil {
		c.index.Set(key, eventID)
	}
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// GetEventByTaskKey searches for the event carrying the task key in its
// private extended properties.
func (c *CalendarClient) GetEventByTaskKey(ctx context.Context, key string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", KeyProperty, key)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
