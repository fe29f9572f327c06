package task

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIndexOutOfRange = errors.New("task number out of range")

// List is the mutable, ordered task list.
type List struct {
	tasks []Task
}

func NewList(tasks ...Task) *List {
	return &List{tasks: append([]Task(nil), tasks...)}
}

func (l *List) Len() int { return len(l.tasks) }

// All returns a copy of the tasks in order.
func (l *List) All() []Task {
	return append([]Task(nil), l.tasks...)
}

func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Get returns the task at the 0-based index i.
func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}
	return l.tasks[i], nil
}

// MarkDone marks the task at the 0-based index i as done and returns it.
func (l *List) MarkDone(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}
	l.tasks[i].MarkDone()
	return l.tasks[i], nil
}

// Delete removes the task at the 0-based index i and returns it.
func (l *List) Delete(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}
	t := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return t, nil
}

// Match is a search hit together with its 0-based position in the list.
type Match struct {
	Index int
	Task  Task
}

// Find returns the tasks whose description contains query, ignoring case.
func (l *List) Find(query string) []Match {
	q := strings.ToLower(query)
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Description()), q) {
			matches = append(matches, Match{Index: i, Task: t})
		}
	}
	return matches
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("%w: %d (list has %d tasks)", ErrIndexOutOfRange, i+1, len(l.tasks))
	}
	return nil
}
