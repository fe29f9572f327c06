package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/taskbot/pkg/task"
	"github.com/peterh/liner"
)

// ErrAborted is returned by Prompt when the user presses Ctrl+C.
var ErrAborted = errors.New("input aborted")

// Prompter reads one line of input per call. io.EOF ends the session.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// LinePrompter reads from the terminal with line editing and history.
type LinePrompter struct {
	line        *liner.State
	historyFile string
}

// NewLinePrompter creates a prompter whose history is kept in historyFile.
// An empty historyFile disables history persistence.
func NewLinePrompter(historyFile string) *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	p := &LinePrompter{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	return p
}

func (p *LinePrompter) Prompt(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (p *LinePrompter) Close() error {
	var saveErr error
	if p.historyFile != "" {
		saveErr = p.saveHistory()
	}
	if err := p.line.Close(); err != nil {
		return err
	}
	return saveErr
}

func (p *LinePrompter) saveHistory() error {
	if err := os.MkdirAll(filepath.Dir(p.historyFile), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := p.line.WriteHistory(f); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// ScannerPrompter reads lines from any reader, writing prompts to w.
// It serves piped input and tests.
type ScannerPrompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewScannerPrompter(r io.Reader, w io.Writer) *ScannerPrompter {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), task.MaxLineLength)
	return &ScannerPrompter{scanner: scanner, w: w}
}

func (p *ScannerPrompter) Prompt(prompt string) (string, error) {
	if p.w != nil && prompt != "" {
		fmt.Fprint(p.w, prompt)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

func (p *ScannerPrompter) Close() error { return nil }
