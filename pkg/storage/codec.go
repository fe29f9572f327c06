// Package storage reads and writes the task list save file.
//
// Each task is one line of fields joined by " | ":
//
//	T | 0 | read book
//	D | 1 | submit report | 02/12/2025 1800
//	E | 0 | team dinner | friday 7pm
//	A | 0 | wash dishes | dinner
//
// The first field is the task type, the second the done flag (1 or 0).
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harrisonrobin/taskbot/pkg/task"
)

var (
	ErrCorruptRecord = errors.New("corrupt task record")
	ErrRecordTooLong = errors.New("task record too long")
)

// Encode writes tasks to w, one record per line.
func Encode(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for i, t := range tasks {
		record := t.SaveText()
		// Decode could not read the record back
		if len(record) >= task.MaxLineLength {
			return fmt.Errorf("%w: task %d has %d bytes", ErrRecordTooLong, i+1, len(record))
		}
		if _, err := bw.WriteString(record + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads records written by Encode. Blank lines are skipped.
func Decode(r io.Reader) ([]task.Task, error) {
	var tasks []task.Task
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), task.MaxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := decodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func decodeRecord(line string) (task.Task, error) {
	fields := strings.SplitN(line, task.Separator, 3)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 fields in %q", ErrCorruptRecord, line)
	}
	tag, marker, rest := fields[0], fields[1], fields[2]

	var done bool
	switch marker {
	case "1":
		done = true
	case "0":
	default:
		return nil, fmt.Errorf("%w: bad done flag %q", ErrCorruptRecord, marker)
	}

	description, when := rest, ""
	if tag != task.TODO {
		// descriptions may contain the separator; the time never does
		i := strings.LastIndex(rest, task.Separator)
		if i < 0 {
			return nil, fmt.Errorf("%w: missing time in %q", ErrCorruptRecord, line)
		}
		description, when = rest[:i], rest[i+len(task.Separator):]
	}

	t, err := task.New(tag, description, when)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if done {
		t.MarkDone()
	}
	return t, nil
}
