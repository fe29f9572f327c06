// Package parser turns a line of user input into a command.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harrisonrobin/taskbot/pkg/command"
	"github.com/harrisonrobin/taskbot/pkg/task"
)

var (
	ErrInsufficientArgument  = errors.New("insufficient argument")
	ErrInvalidArgumentFormat = errors.New("invalid argument format")
	ErrInvalidCommand        = errors.New("invalid command")
)

// Separators splitting the description from the time of timed tasks.
const (
	BY    = "/by "
	AT    = "/at "
	AFTER = "/after "
)

// Parse maps a line of input to a command. It has no side effects.
func Parse(input string) (command.Command, error) {
	keyword, rest, hasRest := strings.Cut(input, " ")

	switch keyword {
	case "bye":
		return command.Exit{}, nil
	case "list":
		return command.List{}, nil
	case "help":
		return command.Help{}, nil
	case "done":
		i, err := parseIndex(keyword, rest, hasRest)
		if err != nil {
			return nil, err
		}
		return command.Done{Index: i}, nil
	case "delete":
		i, err := parseIndex(keyword, rest, hasRest)
		if err != nil {
			return nil, err
		}
		return command.Delete{Index: i}, nil
	case "todo":
		if err := requireArgument(keyword, rest, hasRest); err != nil {
			return nil, err
		}
		return newAdd(keyword, task.TODO, rest, "")
	case "deadline":
		return parseTimed(keyword, task.DEADLINE, rest, hasRest, BY)
	case "event":
		return parseTimed(keyword, task.EVENT, rest, hasRest, AT)
	case "do":
		return parseTimed(keyword, task.DOAFTER, rest, hasRest, AFTER)
	case "find":
		if err := requireArgument(keyword, rest, hasRest); err != nil {
			return nil, err
		}
		return command.Find{Query: rest}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, keyword)
	}
}

func requireArgument(keyword, rest string, hasRest bool) error {
	if !hasRest || strings.TrimSpace(rest) == "" {
		return fmt.Errorf("%w: %s needs an argument", ErrInsufficientArgument, keyword)
	}
	return nil
}

// parseIndex converts a 1-based task number into a 0-based index.
func parseIndex(keyword, rest string, hasRest bool) (int, error) {
	if err := requireArgument(keyword, rest, hasRest); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects a task number, got %q", ErrInvalidArgumentFormat, keyword, rest)
	}
	return n - 1, nil
}

func parseTimed(keyword, tag, rest string, hasRest bool, separator string) (command.Command, error) {
	if err := requireArgument(keyword, rest, hasRest); err != nil {
		return nil, err
	}
	description, when, found := strings.Cut(rest, separator)
	if !found {
		return nil, fmt.Errorf("%w: %s needs %q followed by a time", ErrInsufficientArgument, keyword, strings.TrimSpace(separator))
	}
	if strings.TrimSpace(description) == "" || strings.TrimSpace(when) == "" {
		return nil, fmt.Errorf("%w: %s needs both a description and a time", ErrInsufficientArgument, keyword)
	}
	return newAdd(keyword, tag, description, when)
}

func newAdd(keyword, tag, description, when string) (command.Command, error) {
	t, err := task.New(tag, description, when)
	if errors.Is(err, task.ErrTimeSeparator) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgumentFormat, keyword, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInsufficientArgument, keyword, err)
	}
	return command.Add{Task: t}, nil
}
