// Package file implements the version store on the plain-file layout:
// working prompts under the prompts directory, one directory per prompt
// under the versions root holding its numbered snapshots and version
// pointer file. All rewrites go through a temp file and rename so a
// reader never sees a partial file.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// Version pointer file keys.
const (
	keyCurrentRevision = "current_revision"
	keyLatestRevision  = "latest_revision"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// VersionStore is a file-based implementation of driven.VersionStore
// rooted at the locations named by the project settings.
type VersionStore struct {
	settings domain.Settings
}

// NewVersionStore creates a version store for the given settings.
func NewVersionStore(settings domain.Settings) *VersionStore {
	return &VersionStore{settings: settings}
}

// ReadPrompt returns the content of a prompt's working file.
func (s *VersionStore) ReadPrompt(ctx context.Context, name string) (string, error) {
	path := s.PromptPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("prompt file %s: %w", path, domain.ErrNotFound)
		}
		return "", fmt.Errorf("read prompt file %s: %w", path, err)
	}
	return string(data), nil
}

// WritePrompt replaces a prompt's working file atomically.
func (s *VersionStore) WritePrompt(ctx context.Context, name, content string) (string, error) {
	path := s.PromptPath(name)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("create prompts directory: %w", err)
	}
	if err := atomicWrite(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// PromptPath returns the path of a prompt's working file.
func (s *VersionStore) PromptPath(name string) string {
	return s.settings.WorkingPromptPath(name)
}

// ListPrompts returns the names of all working prompts, sorted.
func (s *VersionStore) ListPrompts(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.settings.PromptsLocation)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("prompts directory %s: %w", s.settings.PromptsLocation, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read prompts directory %s: %w", s.settings.PromptsLocation, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), domain.PromptFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), domain.PromptFileExt)
		if domain.ValidatePromptName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ReadSnapshot returns the content of one committed snapshot.
func (s *VersionStore) ReadSnapshot(ctx context.Context, name string, rev domain.Revision) (string, error) {
	path := s.SnapshotPath(name, rev)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("snapshot %s: %w", path, domain.ErrNotFound)
		}
		return "", fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return string(data), nil
}

// WriteSnapshot creates one committed snapshot. Snapshots are immutable,
// so an existing file for the revision is an error, never overwritten.
func (s *VersionStore) WriteSnapshot(ctx context.Context, name string, rev domain.Revision, content string) (string, error) {
	path := s.SnapshotPath(name, rev)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("snapshot %s: %w", path, domain.ErrAlreadyExists)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat snapshot %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("create versions directory: %w", err)
	}
	if err := atomicWrite(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// SnapshotPath returns the path of one committed snapshot.
func (s *VersionStore) SnapshotPath(name string, rev domain.Revision) string {
	return s.settings.SnapshotPath(name, rev)
}

// ListRevisions returns all committed revision numbers of a prompt in
// ascending order. Files outside the snapshot series, the pointer file
// for instance, are skipped.
func (s *VersionStore) ListRevisions(ctx context.Context, name string) ([]domain.Revision, error) {
	dir := s.settings.PromptVersionsDir(name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read versions directory %s: %w", dir, err)
	}

	var revs []domain.Revision
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rev, err := domain.ParseSnapshotFileName(name, entry.Name())
		if err != nil {
			continue
		}
		revs = append(revs, rev)
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i] < revs[j] })
	return revs, nil
}

// ReadPointer returns a prompt's version pointer. A missing pointer file
// reads as the zero pointer.
func (s *VersionStore) ReadPointer(ctx context.Context, name string) (domain.VersionPointer, error) {
	path := s.PointerPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.VersionPointer{}, nil
		}
		return domain.VersionPointer{}, fmt.Errorf("read version file %s: %w", path, err)
	}

	var pointer domain.VersionPointer
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case keyCurrentRevision:
			pointer.CurrentRevision, err = domain.ParseRevision(value)
		case keyLatestRevision:
			pointer.LatestRevision, err = domain.ParseRevision(value)
		default:
			continue
		}
		if err != nil {
			return domain.VersionPointer{}, fmt.Errorf("version file %s: %w", path, err)
		}
	}
	return pointer, nil
}

// WritePointer updates a prompt's version pointer file atomically. Lines
// other than the two pointer entries are preserved in place, so the file
// can carry entries this tool does not know about.
func (s *VersionStore) WritePointer(ctx context.Context, name string, pointer domain.VersionPointer) error {
	path := s.PointerPath(name)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create versions directory: %w", err)
	}

	var lines []string
	if data, err := os.ReadFile(path); err == nil {
		if trimmed := strings.TrimRight(string(data), "\n"); trimmed != "" {
			lines = strings.Split(trimmed, "\n")
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read version file %s: %w", path, err)
	}

	lines = setPointerLine(lines, keyCurrentRevision, pointer.CurrentRevision.String())
	lines = setPointerLine(lines, keyLatestRevision, pointer.LatestRevision.String())
	return atomicWrite(path, strings.Join(lines, "\n")+"\n")
}

// setPointerLine replaces the line carrying key, or appends one.
func setPointerLine(lines []string, key, value string) []string {
	entry := key + "=" + value
	for i, line := range lines {
		if k, _, found := strings.Cut(line, "="); found && strings.TrimSpace(k) == key {
			lines[i] = entry
			return lines
		}
	}
	return append(lines, entry)
}

// PointerPath returns the path of a prompt's version pointer file.
func (s *VersionStore) PointerPath(name string) string {
	return s.settings.VersionFilePath(name)
}

// atomicWrite replaces the file at path via a temp file and rename.
func atomicWrite(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
