package parser

import (
	"errors"
	"testing"

	"github.com/harrisonrobin/taskbot/pkg/command"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"github.com/stretchr/testify/require"
)

func TestParseAdd(t *testing.T) {
	tests := []struct {
		input string
		tag   string
		desc  string
		time  string
	}{
		{"todo read book", task.TODO, "read book", ""},
		{"deadline submit /by 2024", task.DEADLINE, "submit", "2024"},
		{"deadline essay draft /by 02/12/2025 1800", task.DEADLINE, "essay draft", "02/12/2025 1800"},
		{"event party /at friday night", task.EVENT, "party", "friday night"},
		{"do wash dishes /after dinner", task.DOAFTER, "wash dishes", "dinner"},
		// only the first separator splits
		{"deadline a /by b /by c", task.DEADLINE, "a", "b /by c"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.NoError(t, err)
			add, ok := cmd.(command.Add)
			require.True(t, ok, "expected Add, got %T", cmd)
			require.Equal(t, tt.tag, add.Task.Tag())
			require.Equal(t, tt.desc, add.Task.Description())
			require.Equal(t, tt.time, add.Task.Time())
			require.False(t, add.Task.Done())
		})
	}
}

func TestParseIndexCommands(t *testing.T) {
	cmd, err := Parse("done 2")
	require.NoError(t, err)
	require.Equal(t, command.Done{Index: 1}, cmd)

	cmd, err = Parse("delete 1")
	require.NoError(t, err)
	require.Equal(t, command.Delete{Index: 0}, cmd)

	// range is the executor's business
	cmd, err = Parse("done 0")
	require.NoError(t, err)
	require.Equal(t, command.Done{Index: -1}, cmd)
}

func TestParseSimpleCommands(t *testing.T) {
	tests := map[string]command.Command{
		"bye":            command.Exit{},
		"list":           command.List{},
		"help":           command.Help{},
		"find book":      command.Find{Query: "book"},
		"find two words": command.Find{Query: "two words"},
	}
	for input, want := range tests {
		cmd, err := Parse(input)
		require.NoError(t, err, input)
		require.Equal(t, want, cmd, input)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"done x", ErrInvalidArgumentFormat},
		{"delete 1.5", ErrInvalidArgumentFormat},
		{"done", ErrInsufficientArgument},
		{"done ", ErrInsufficientArgument},
		{"delete", ErrInsufficientArgument},
		{"todo", ErrInsufficientArgument},
		{"todo ", ErrInsufficientArgument},
		{"todo    ", ErrInsufficientArgument},
		{"find", ErrInsufficientArgument},
		{"deadline submit", ErrInsufficientArgument},
		{"deadline submit /by", ErrInsufficientArgument},
		{"deadline submit /by ", ErrInsufficientArgument},
		{"deadline /by 2024", ErrInsufficientArgument},
		{"deadline", ErrInsufficientArgument},
		{"event party /by friday", ErrInsufficientArgument},
		{"do wash", ErrInsufficientArgument},
		{"deadline x /by a | b", ErrInvalidArgumentFormat},
		{"event party /at fri | sat", ErrInvalidArgumentFormat},
		{"foo", ErrInvalidCommand},
		{"", ErrInvalidCommand},
		{"TODO read", ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.Nil(t, cmd)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseRejectsSeparatorInTime(t *testing.T) {
	_, err := Parse("deadline x /by a | b")
	require.True(t, errors.Is(err, task.ErrTimeSeparator), "got %v", err)

	// a separator in the description is fine
	cmd, err := Parse("deadline a | b /by friday")
	require.NoError(t, err)
	add := cmd.(command.Add)
	require.Equal(t, "a | b", add.Task.Description())
	require.Equal(t, "friday", add.Task.Time())
}
