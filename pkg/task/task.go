package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type tags used in the save file and in the display form.
const (
	TODO     = "T"
	DEADLINE = "D"
	EVENT    = "E"
	DOAFTER  = "A"
)

// Separator joins the fields of a saved task record.
const Separator = " | "

// MaxLineLength bounds a single line of input or of the save file.
const MaxLineLength = 1 << 20

var (
	ErrEmptyDescription = errors.New("task description cannot be empty")
	ErrEmptyTime        = errors.New("task time cannot be empty")
	ErrTimeSeparator    = fmt.Errorf("task time cannot contain %q", Separator)
)

// keySpace namespaces task keys so they never collide with other v5 UUIDs.
var keySpace = uuid.MustParse("6f1d3c0a-5b7e-4f43-9a57-2c4d8e1b9f20")

// Task is a trackable item. All four variants implement it.
type Task interface {
	Tag() string
	Description() string
	// Time returns the raw time string, or "" for tasks without one.
	Time() string
	Done() bool
	MarkDone()
	// String returns the form shown to the user.
	String() string
	// SaveText returns the record written to the save file.
	SaveText() string
}

type base struct {
	description string
	done        bool
}

func newBase(description string) (base, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return base{}, ErrEmptyDescription
	}
	return base{description: description}, nil
}

func (b *base) Description() string { return b.description }
func (b *base) Done() bool          { return b.done }
func (b *base) MarkDone()           { b.done = true }

func (b *base) status() string {
	if b.done {
		return "[X]"
	}
	return "[ ]"
}

func (b *base) doneMarker() string {
	if b.done {
		return "1"
	}
	return "0"
}

// timed holds the fields shared by the variants carrying a time.
type timed struct {
	base
	time string
}

func newTimed(description, when string) (timed, error) {
	b, err := newBase(description)
	if err != nil {
		return timed{}, err
	}
	when = strings.TrimSpace(when)
	if when == "" {
		return timed{}, ErrEmptyTime
	}
	// the time is the last field of a saved record
	if strings.Contains(when, Separator) {
		return timed{}, ErrTimeSeparator
	}
	return timed{base: b, time: when}, nil
}

func (t *timed) Time() string { return t.time }

func (t *timed) display(tag, label string) string {
	return fmt.Sprintf("[%s]%s %s (%s: %s)", tag, t.status(), t.description, label, FormatTime(t.time))
}

func (t *timed) saveText(tag string) string {
	return strings.Join([]string{tag, t.doneMarker(), t.description, t.time}, Separator)
}

// ToDo is a plain task with no time attached.
type ToDo struct {
	base
}

func NewToDo(description string) (*ToDo, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &ToDo{base: b}, nil
}

func (t *ToDo) Tag() string  { return TODO }
func (t *ToDo) Time() string { return "" }

func (t *ToDo) String() string {
	return fmt.Sprintf("[%s]%s %s", TODO, t.status(), t.description)
}

func (t *ToDo) SaveText() string {
	return strings.Join([]string{TODO, t.doneMarker(), t.description}, Separator)
}

// Deadline is a task that has to be done by a given time.
type Deadline struct {
	timed
}

func NewDeadline(description, by string) (*Deadline, error) {
	t, err := newTimed(description, by)
	if err != nil {
		return nil, err
	}
	return &Deadline{timed: t}, nil
}

func (d *Deadline) Tag() string      { return DEADLINE }
func (d *Deadline) String() string   { return d.display(DEADLINE, "by") }
func (d *Deadline) SaveText() string { return d.saveText(DEADLINE) }

// Event is a task happening at a given time.
type Event struct {
	timed
}

func NewEvent(description, at string) (*Event, error) {
	t, err := newTimed(description, at)
	if err != nil {
		return nil, err
	}
	return &Event{timed: t}, nil
}

func (e *Event) Tag() string      { return EVENT }
func (e *Event) String() string   { return e.display(EVENT, "at") }
func (e *Event) SaveText() string { return e.saveText(EVENT) }

// DoAfter is a task that can only be started after a given time or event.
type DoAfter struct {
	timed
}

func NewDoAfter(description, after string) (*DoAfter, error) {
	t, err := newTimed(description, after)
	if err != nil {
		return nil, err
	}
	return &DoAfter{timed: t}, nil
}

func (a *DoAfter) Tag() string      { return DOAFTER }
func (a *DoAfter) String() string   { return a.display(DOAFTER, "after") }
func (a *DoAfter) SaveText() string { return a.saveText(DOAFTER) }

// New builds the variant named by tag. when is ignored for TODO.
func New(tag, description, when string) (Task, error) {
	var (
		t   Task
		err error
	)
	switch tag {
	case TODO:
		t, err = NewToDo(description)
	case DEADLINE:
		t, err = NewDeadline(description, when)
	case EVENT:
		t, err = NewEvent(description, when)
	case DOAFTER:
		t, err = NewDoAfter(description, when)
	default:
		return nil, fmt.Errorf("unknown task type %q", tag)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Key returns a stable identifier for a task derived from its type,
// description and time. The done flag is not part of the key.
func Key(t Task) string {
	name := strings.Join([]string{t.Tag(), t.Description(), t.Time()}, Separator)
	return uuid.NewSHA1(keySpace, []byte(name)).String()
}

// Equal reports whether two tasks have the same variant, fields and state.
func Equal(a, b Task) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Tag() == b.Tag() &&
		a.Description() == b.Description() &&
		a.Time() == b.Time() &&
		a.Done() == b.Done()
}
