// Package preset stores named base generation configurations and resolves
// per-request configurations from them.
package preset

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/run-bigpig/genconfig/pkg/genconfig"
	"github.com/run-bigpig/genconfig/pkg/interfaces"
)

// MemoryStore is an in-process PresetStore backed by a map.
type MemoryStore struct {
	presets   map[string]*genconfig.GenerationConfig
	revisions map[string]string
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty in-memory preset store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		presets:   make(map[string]*genconfig.GenerationConfig),
		revisions: make(map[string]string),
	}
}

// Save stores a copy of the configuration under the given name and returns
// the new revision id.
func (s *MemoryStore) Save(_ context.Context, name string, cfg *genconfig.GenerationConfig) (string, error) {
	revision := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.presets[name] = cfg.Clone()
	s.revisions[name] = revision
	return revision, nil
}

// Get returns a copy of the named preset, so callers can overlay overrides
// without touching the stored base.
func (s *MemoryStore) Get(_ context.Context, name string) (*genconfig.GenerationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.presets[name]
	if !ok {
		return nil, interfaces.ErrPresetNotFound
	}
	return cfg.Clone(), nil
}

// Revision returns the revision id of the named preset.
func (s *MemoryStore) Revision(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revision, ok := s.revisions[name]
	return revision, ok
}

// Delete removes the named preset.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.presets, name)
	delete(s.revisions, name)
	return nil
}

// List returns the names of all stored presets.
func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	return names, nil
}
