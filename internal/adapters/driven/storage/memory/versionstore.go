// Package memory provides in-memory implementations of the driven
// storage ports, used in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// VersionStore is an in-memory implementation of driven.VersionStore.
// Paths are computed from the settings like the file store's, but
// nothing is written to disk. The store behaves like an initialised
// project: listing prompts never fails with a missing directory.
type VersionStore struct {
	mu        sync.RWMutex
	settings  domain.Settings
	prompts   map[string]string
	snapshots map[string]map[domain.Revision]string
	pointers  map[string]domain.VersionPointer
}

// NewVersionStore creates a new in-memory version store.
func NewVersionStore(settings domain.Settings) *VersionStore {
	return &VersionStore{
		settings:  settings,
		prompts:   make(map[string]string),
		snapshots: make(map[string]map[domain.Revision]string),
		pointers:  make(map[string]domain.VersionPointer),
	}
}

// ReadPrompt returns the content of a prompt's working file.
func (s *VersionStore) ReadPrompt(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

// WritePrompt replaces a prompt's working file.
func (s *VersionStore) WritePrompt(_ context.Context, name, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts[name] = content
	return s.settings.WorkingPromptPath(name), nil
}

// PromptPath returns the path of a prompt's working file.
func (s *VersionStore) PromptPath(name string) string {
	return s.settings.WorkingPromptPath(name)
}

// ListPrompts returns the names of all working prompts, sorted.
func (s *VersionStore) ListPrompts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.prompts))
	for name := range s.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ReadSnapshot returns the content of one committed snapshot.
func (s *VersionStore) ReadSnapshot(_ context.Context, name string, rev domain.Revision) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.snapshots[name][rev]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

// WriteSnapshot creates one committed snapshot.
func (s *VersionStore) WriteSnapshot(_ context.Context, name string, rev domain.Revision, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[name][rev]; ok {
		return "", domain.ErrAlreadyExists
	}
	if s.snapshots[name] == nil {
		s.snapshots[name] = make(map[domain.Revision]string)
	}
	s.snapshots[name][rev] = content
	return s.settings.SnapshotPath(name, rev), nil
}

// SnapshotPath returns the path of one committed snapshot.
func (s *VersionStore) SnapshotPath(name string, rev domain.Revision) string {
	return s.settings.SnapshotPath(name, rev)
}

// ListRevisions returns all committed revision numbers of a prompt in
// ascending order.
func (s *VersionStore) ListRevisions(_ context.Context, name string) ([]domain.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	revs := make([]domain.Revision, 0, len(s.snapshots[name]))
	for rev := range s.snapshots[name] {
		revs = append(revs, rev)
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i] < revs[j] })
	return revs, nil
}

// ReadPointer returns a prompt's version pointer. A prompt without one
// reads as the zero pointer.
func (s *VersionStore) ReadPointer(_ context.Context, name string) (domain.VersionPointer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointers[name], nil
}

// WritePointer updates a prompt's version pointer.
func (s *VersionStore) WritePointer(_ context.Context, name string, pointer domain.VersionPointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointers[name] = pointer
	return nil
}

// PointerPath returns the path of a prompt's version pointer file.
func (s *VersionStore) PointerPath(name string) string {
	return s.settings.VersionFilePath(name)
}
