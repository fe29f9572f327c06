package app

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/taskbot/pkg/logging"
	"github.com/harrisonrobin/taskbot/pkg/storage"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"github.com/harrisonrobin/taskbot/pkg/ui"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	calls int
}

func (f *failingStore) Save(*task.List) error {
	f.calls++
	return errors.New("disk full")
}

func newSession(t *testing.T, input string, store Store) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Session{
		List:     task.NewList(),
		Store:    store,
		Prompter: ui.NewScannerPrompter(strings.NewReader(input), nil),
		Renderer: ui.NewRenderer(&out, ui.PlainStyles()),
		Logger:   logging.Discard(),
		Now:      func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local) },
	}, &out
}

func TestSessionPersistsChanges(t *testing.T) {
	file := storage.NewFile(filepath.Join(t.TempDir(), "tasks.txt"))
	input := strings.Join([]string{
		"todo read book",
		"deadline submit /by 2024",
		"done 2",
		"event party /at friday",
		"delete 3",
		"bye",
		"todo never reached",
	}, "\n")

	s, out := newSession(t, input, file)
	require.NoError(t, s.Run())

	loaded, err := file.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	first, _ := loaded.Get(0)
	second, _ := loaded.Get(1)
	require.Equal(t, "T | 0 | read book", first.SaveText())
	require.Equal(t, "D | 1 | submit | 2024", second.SaveText())

	require.Contains(t, out.String(), "Bye.")
	require.NotContains(t, out.String(), "never reached")
}

func TestSessionContinuesAfterErrors(t *testing.T) {
	file := storage.NewFile(filepath.Join(t.TempDir(), "tasks.txt"))
	input := strings.Join([]string{
		"foo",
		"done x",
		"deadline submit",
		"done 7",
		"deadline x /by a | b",
		"",
		"todo still works",
		"list",
	}, "\n")

	s, out := newSession(t, input, file)
	require.NoError(t, s.Run())

	text := out.String()
	require.Contains(t, text, "Oops! Invalid command")
	require.Contains(t, text, "Oops! Invalid argument format")
	require.Contains(t, text, "Oops! Insufficient argument")
	require.Contains(t, text, "Oops! Task number out of range")
	require.Contains(t, text, "cannot contain")
	require.Equal(t, 1, strings.Count(text, "Use the number shown by 'list'"))
	require.Contains(t, text, "1. [T][ ] still works")
	require.Equal(t, 1, s.List.Len())
}

func TestSessionReportsSaveFailure(t *testing.T) {
	store := &failingStore{}
	s, out := newSession(t, "todo read\nlist\nfind read\n", store)
	require.NoError(t, s.Run())

	require.Equal(t, 1, store.calls, "only mutating commands save")
	require.Contains(t, out.String(), "could not be saved: disk full")
	require.Equal(t, 1, s.List.Len())
}

func TestSessionShowsReminders(t *testing.T) {
	s, out := newSession(t, "bye\n", &failingStore{})
	late, err := task.NewDeadline("pay rent", "01/06/2025")
	require.NoError(t, err)
	s.List.Add(late)

	require.NoError(t, s.Run())
	require.Contains(t, out.String(), "These tasks are overdue:")
	require.Contains(t, out.String(), "1. [D][ ] pay rent")
}
