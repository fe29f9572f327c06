package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/taskbot/pkg/index"
	"google.golang.org/api/calendar/v3"
)

// NewClient resolves calendarName on srv and returns a client for it.
func NewClient(ctx context.Context, srv *calendar.Service, calendarName string, idx *index.EventIndex, logger *log.Logger) (*CalendarClient, error) {
	calendarID, err := FindCalendarID(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx, logger), nil
}

// FindCalendarID returns the id of the calendar whose summary is name.
func FindCalendarID(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	var calendarID string
	err := srv.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			if item.Summary == name {
				calendarID = item.Id
				return errFound
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	if calendarID == "" {
		return "", fmt.Errorf("calendar '%s' not found", name)
	}
	return calendarID, nil
}

var errFound = errors.New("found")
