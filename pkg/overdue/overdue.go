package overdue

import (
	"sort"
	"time"

	"github.com/harrisonrobin/taskbot/pkg/task"
)

type Entry struct {
	Number int // 1-based position in the list
	Task   task.Task
	Due    time.Time
}

// DueTime returns the time a task is due, if it has a parseable one.
// Date-only times are due at the end of that day.
func DueTime(t task.Task) (time.Time, bool) {
	if t.Tag() == task.TODO {
		return time.Time{}, false
	}
	due, hasClock, ok := task.ParseTime(t.Time())
	if !ok {
		return time.Time{}, false
	}
	if !hasClock {
		due = due.AddDate(0, 0, 1)
	}
	return due, true
}

// IsOverdue reports whether a pending task's time has passed.
func IsOverdue(t task.Task, now time.Time) bool {
	if t.Done() {
		return false
	}
	due, ok := DueTime(t)
	return ok && due.Before(now)
}

// Sweep returns the pending tasks whose time has passed, oldest first.
func Sweep(list *task.List, now time.Time) []Entry {
	var swept []Entry
	for i, t := range list.All() {
		if !IsOverdue(t, now) {
			continue
		}
		due, _ := DueTime(t)
		swept = append(swept, Entry{Number: i + 1, Task: t, Due: due})
	}
	sort.SliceStable(swept, func(i, j int) bool {
		return swept[i].Due.Before(swept[j].Due)
	})
	return swept
}
