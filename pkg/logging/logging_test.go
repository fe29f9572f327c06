package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "WARN")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("save failed", "path", "/tmp/tasks.txt")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "save failed")
	require.Contains(t, out, "/tmp/tasks.txt")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}
