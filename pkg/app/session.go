// Package app runs the interactive read-eval-print session.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/taskbot/pkg/command"
	"github.com/harrisonrobin/taskbot/pkg/overdue"
	"github.com/harrisonrobin/taskbot/pkg/parser"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"github.com/harrisonrobin/taskbot/pkg/ui"
)

// Store persists the task list.
type Store interface {
	Save(list *task.List) error
}

type Session struct {
	List     *task.List
	Store    Store
	Prompter ui.Prompter
	Renderer *ui.Renderer
	Logger   *log.Logger
	// Now is used for overdue reminders. Defaults to time.Now.
	Now func() time.Time
}

// Run loops until the user says bye or input ends. Errors from individual
// commands are shown to the user and never end the session.
func (s *Session) Run() error {
	now := s.Now
	if now == nil {
		now = time.Now
	}

	s.Renderer.Greeting(s.List.Len())
	s.Renderer.Reminders(overdue.Sweep(s.List, now()))

	for {
		input, err := s.Prompter.Prompt(s.Renderer.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrAborted) {
				s.Logger.Debug("input closed", "reason", err)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if exit := s.handle(input); exit {
			return nil
		}
	}
}

// handle runs a single line and reports whether the session should end.
func (s *Session) handle(input string) bool {
	cmd, err := parser.Parse(input)
	if err != nil {
		s.Logger.Debug("parse failed", "input", input, "err", err)
		s.Renderer.Error(explain(err))
		return false
	}

	res, err := command.Execute(cmd, s.List)
	if err != nil {
		s.Logger.Debug("command failed", "command", fmt.Sprintf("%T", cmd), "err", err)
		s.Renderer.Error(err)
		return false
	}

	if res.Changed {
		if err := s.Store.Save(s.List); err != nil {
			s.Logger.Error("failed to save tasks", "err", err)
			s.Renderer.Warning("Warning: your tasks could not be saved: " + err.Error())
		}
	}

	s.Renderer.Result(res)
	return res.Exit
}

func explain(err error) error {
	switch {
	case errors.Is(err, parser.ErrInvalidCommand):
		return fmt.Errorf("%w. Type 'help' to see what I understand", err)
	case errors.Is(err, task.ErrTimeSeparator):
		return err
	case errors.Is(err, parser.ErrInvalidArgumentFormat):
		return fmt.Errorf("%w. Use the number shown by 'list'", err)
	default:
		return err
	}
}
