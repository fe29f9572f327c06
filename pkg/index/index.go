package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const FileName = "events.json"

// EventIndex maps task keys to the ids of the calendar events published for
// them.
type EventIndex struct {
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

// NewEventIndex opens the index stored at path, creating an empty one when
// the file does not exist yet.
func NewEventIndex(path string) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]string),
		Path:     path,
	}

	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *EventIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err := json.NewDecoder(f).Decode(&idx.Mappings); err != nil {
		return err
	}
	if idx.Mappings == nil {
		idx.Mappings = make(map[string]string)
	}
	return nil
}

func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(taskKey string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[taskKey]
}

func (idx *EventIndex) Set(taskKey, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[taskKey] != eventID {
		idx.Mappings[taskKey] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(taskKey string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[taskKey]; exists {
		delete(idx.Mappings, taskKey)
		idx.dirty = true
	}
}

// Keys returns every indexed task key in sorted order.
func (idx *EventIndex) Keys() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	keys := make([]string, 0, len(idx.Mappings))
	for k := range idx.Mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
