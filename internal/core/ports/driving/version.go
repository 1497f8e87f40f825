package driving

import (
	"context"

	"github.com/jimkring/mirascope/internal/core/domain"
)

// StatusResult describes whether a working prompt has drifted from its
// current revision.
type StatusResult struct {
	// PromptName is the prompt the result describes.
	PromptName string

	// Path is the working prompt file path.
	Path string

	// Changed is true when the working body differs from the current
	// revision's body, and always true before the first commit.
	Changed bool

	// CurrentRevision is the revision the working prompt derives from,
	// or domain.RevisionNone before the first commit.
	CurrentRevision domain.Revision
}

// AddResult describes one committed revision.
type AddResult struct {
	// Revision is the number the commit received.
	Revision domain.Revision

	// SnapshotPath is the snapshot file the commit created.
	SnapshotPath string

	// PromptPath is the working prompt file rewritten by the commit.
	PromptPath string
}

// UseResult describes one checkout.
type UseResult struct {
	// Revision is the revision checked out.
	Revision domain.Revision

	// SnapshotPath is the snapshot file the working prompt was rewritten
	// from.
	SnapshotPath string

	// PromptPath is the working prompt file path.
	PromptPath string
}

// VersionService provides prompt version control: drift detection,
// commits, and checkouts. Prompt arguments accept either the bare name
// or the file name with its ".prompt" extension.
type VersionService interface {
	// CheckStatus reports whether a prompt's working file has changed
	// since its current revision. Returns domain.ErrNotFound if the
	// working file does not exist.
	CheckStatus(ctx context.Context, prompt string) (*StatusResult, error)

	// Add commits the working prompt as the next revision and rewrites
	// the working file from the new snapshot. The optional alias names
	// the new revision. Returns domain.ErrNoChanges when the working
	// prompt matches its current revision.
	Add(ctx context.Context, prompt, alias string) (*AddResult, error)

	// Use rewrites the working prompt from a committed snapshot. The
	// target is a revision number when it is purely numeric, otherwise
	// an alias; a non-empty version pins an alias to one revision.
	// Returns domain.ErrUncommittedChanges if the working prompt has
	// drifted, and domain.ErrAmbiguousRevision if an alias matches more
	// than one revision without a pinning version.
	Use(ctx context.Context, prompt, target, version string) (*UseResult, error)

	// ListPrompts returns the names of all working prompts, sorted.
	ListPrompts(ctx context.Context) ([]string, error)
}
