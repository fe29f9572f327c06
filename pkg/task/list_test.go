package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleList(t *testing.T) *List {
	t.Helper()
	read, err := NewToDo("read book")
	require.NoError(t, err)
	submit, err := NewDeadline("submit report", "2024")
	require.NoError(t, err)
	borrow, err := NewToDo("return Book to library")
	require.NoError(t, err)
	return NewList(read, submit, borrow)
}

func TestListMarkDone(t *testing.T) {
	l := sampleList(t)

	got, err := l.MarkDone(1)
	require.NoError(t, err)
	require.True(t, got.Done())
	require.Equal(t, "submit report", got.Description())
}

func TestListDelete(t *testing.T) {
	l := sampleList(t)

	got, err := l.Delete(0)
	require.NoError(t, err)
	require.Equal(t, "read book", got.Description())
	require.Equal(t, 2, l.Len())

	first, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "submit report", first.Description())
}

func TestListBounds(t *testing.T) {
	l := sampleList(t)

	for _, i := range []int{-1, 3, 100} {
		_, err := l.MarkDone(i)
		require.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d", i)
		_, err = l.Delete(i)
		require.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d", i)
	}
	require.Equal(t, 3, l.Len())
}

func TestListFind(t *testing.T) {
	l := sampleList(t)

	matches := l.Find("book")
	require.Len(t, matches, 2)
	require.Equal(t, 0, matches[0].Index)
	require.Equal(t, 2, matches[1].Index)

	require.Empty(t, l.Find("groceries"))
}

func TestListAllIsCopy(t *testing.T) {
	l := sampleList(t)
	all := l.All()
	all[0] = nil

	first, err := l.Get(0)
	require.NoError(t, err)
	require.NotNil(t, first)
}
