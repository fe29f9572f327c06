package overdue

import (
	"testing"
	"time"

	"github.com/harrisonrobin/taskbot/pkg/task"
)

func mustTask(t *testing.T, tag, desc, when string) task.Task {
	t.Helper()
	tk, err := task.New(tag, desc, when)
	if err != nil {
		t.Fatalf("task.New(%s, %s, %s) failed: %v", tag, desc, when, err)
	}
	return tk
}

func TestSweep(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	finished := mustTask(t, task.DEADLINE, "finished", "01/06/2025 0900")
	finished.MarkDone()

	list := task.NewList(
		mustTask(t, task.TODO, "no time", ""),
		mustTask(t, task.DEADLINE, "late", "10/06/2025 0900"),
		mustTask(t, task.EVENT, "future", "20/06/2025 0900"),
		mustTask(t, task.DEADLINE, "free text", "someday"),
		finished,
		mustTask(t, task.DOAFTER, "older", "2025-06-01"),
		mustTask(t, task.DEADLINE, "today", "15/06/2025"),
	)

	swept := Sweep(list, now)
	if len(swept) != 2 {
		t.Fatalf("Expected 2 overdue tasks, got %d: %v", len(swept), swept)
	}
	if swept[0].Task.Description() != "older" || swept[0].Number != 6 {
		t.Errorf("Expected oldest entry 'older' (#6) first, got %q (#%d)", swept[0].Task.Description(), swept[0].Number)
	}
	if swept[1].Task.Description() != "late" || swept[1].Number != 2 {
		t.Errorf("Expected 'late' (#2) second, got %q (#%d)", swept[1].Task.Description(), swept[1].Number)
	}
}

func TestDueTimeDateOnlyIsEndOfDay(t *testing.T) {
	due, ok := DueTime(mustTask(t, task.DEADLINE, "x", "15/06/2025"))
	if !ok {
		t.Fatal("Expected a parseable due time")
	}
	want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	if !due.Equal(want) {
		t.Errorf("Expected due %v, got %v", want, due)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	if IsOverdue(mustTask(t, task.EVENT, "x", "no idea"), now) {
		t.Error("free-text times must never be overdue")
	}
	if !IsOverdue(mustTask(t, task.EVENT, "x", "2025-06-15 11:59"), now) {
		t.Error("Expected a past event to be overdue")
	}
}
