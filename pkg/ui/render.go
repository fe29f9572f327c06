// Package ui handles console input and renders command results.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harrisonrobin/taskbot/pkg/command"
	"github.com/harrisonrobin/taskbot/pkg/overdue"
)

// Styles used for console output.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Number  lipgloss.Style
	Done    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Prompt  lipgloss.Style
}

// DefaultStyles returns coloured styles. lipgloss drops the colours itself
// when the output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Message: plain,
		Number:  plain,
		Done:    plain,
		Error:   plain,
		Warning: plain,
		Prompt:  plain,
	}
}

// Renderer writes results to the console.
type Renderer struct {
	w      io.Writer
	styles Styles
}

func NewRenderer(w io.Writer, styles Styles) *Renderer {
	return &Renderer{w: w, styles: styles}
}

func (r *Renderer) Prompt() string {
	return r.styles.Prompt.Render("> ")
}

func (r *Renderer) Greeting(count int) {
	fmt.Fprintln(r.w, r.styles.Title.Render("Hello! I'm taskbot."))
	switch count {
	case 0:
		fmt.Fprintln(r.w, r.styles.Message.Render("Your task list is empty. Type 'help' to see what I can do."))
	case 1:
		fmt.Fprintln(r.w, r.styles.Message.Render("You have 1 task. Type 'help' to see what I can do."))
	default:
		fmt.Fprintln(r.w, r.styles.Message.Render(fmt.Sprintf("You have %d tasks. Type 'help' to see what I can do.", count)))
	}
}

// Reminders lists overdue tasks. Nothing is printed when there are none.
func (r *Renderer) Reminders(entries []overdue.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(r.w, r.styles.Warning.Render("These tasks are overdue:"))
	for _, e := range entries {
		fmt.Fprintf(r.w, "%s %s\n", r.styles.Number.Render(fmt.Sprintf("%d.", e.Number)), e.Task)
	}
}

// Result renders the outcome of a command.
func (r *Renderer) Result(res command.Result) {
	if res.Message != "" {
		fmt.Fprintln(r.w, r.styles.Message.Render(res.Message))
	}
	for _, e := range res.Entries {
		line := e.Task.String()
		if e.Task.Done() {
			line = r.styles.Done.Render(line)
		}
		fmt.Fprintf(r.w, "  %s %s\n", r.styles.Number.Render(fmt.Sprintf("%d.", e.Number)), line)
	}
	for _, l := range res.Lines {
		fmt.Fprintln(r.w, "  "+l)
	}
}

func (r *Renderer) Error(err error) {
	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	fmt.Fprintln(r.w, r.styles.Error.Render("Oops! "+msg))
}

func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.w, r.styles.Warning.Render(msg))
}
