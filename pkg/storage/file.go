package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskbot/pkg/task"
)

// File is the save file backing a task list.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the save file. A missing file yields an empty list.
func (f *File) Load() (*task.List, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.NewList(), nil
		}
		return nil, err
	}
	defer file.Close()

	tasks, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file %s: %w", f.Path, err)
	}
	return task.NewList(tasks...), nil
}

// Save writes the list to a temporary file next to Path and renames it into
// place, so an interrupted write never leaves a truncated save file.
func (f *File) Save(list *task.List) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, list.All()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}
