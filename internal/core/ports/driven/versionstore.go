package driven

import (
	"context"

	"github.com/jimkring/mirascope/internal/core/domain"
)

// VersionStore provides access to the on-disk prompt layout: working
// prompt files, immutable revision snapshots, and the per-prompt version
// pointer file. It owns every path in that layout; services never touch
// the filesystem directly.
type VersionStore interface {
	// ReadPrompt returns the content of a prompt's working file.
	// Returns domain.ErrNotFound if the working file does not exist.
	ReadPrompt(ctx context.Context, name string) (string, error)

	// WritePrompt replaces a prompt's working file atomically and returns
	// its path, creating the prompts directory if needed.
	WritePrompt(ctx context.Context, name, content string) (string, error)

	// PromptPath returns the path of a prompt's working file.
	PromptPath(name string) string

	// ListPrompts returns the names of all working prompts, sorted.
	// Returns domain.ErrNotFound if the prompts directory does not exist.
	ListPrompts(ctx context.Context) ([]string, error)

	// ReadSnapshot returns the content of one committed snapshot.
	// Returns domain.ErrNotFound if the snapshot does not exist.
	ReadSnapshot(ctx context.Context, name string, rev domain.Revision) (string, error)

	// WriteSnapshot creates one committed snapshot atomically and returns
	// its path. Snapshots are immutable: writing a revision that already
	// exists returns domain.ErrAlreadyExists.
	WriteSnapshot(ctx context.Context, name string, rev domain.Revision, content string) (string, error)

	// SnapshotPath returns the path of one committed snapshot.
	SnapshotPath(name string, rev domain.Revision) string

	// ListRevisions returns all committed revision numbers of a prompt in
	// ascending order. A prompt with no snapshot directory has none.
	ListRevisions(ctx context.Context, name string) ([]domain.Revision, error)

	// ReadPointer returns a prompt's version pointer. A missing pointer
	// file reads as the zero pointer (never committed), not as an error.
	ReadPointer(ctx context.Context, name string) (domain.VersionPointer, error)

	// WritePointer updates a prompt's version pointer file atomically,
	// preserving any lines it does not own.
	WritePointer(ctx context.Context, name string, pointer domain.VersionPointer) error

	// PointerPath returns the path of a prompt's version pointer file.
	PointerPath(name string) string
}
