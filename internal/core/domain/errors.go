package domain

import "errors"

// Sentinel errors returned by services and adapters. Callers match them
// with errors.Is; adapters wrap them with path and prompt context.
var (
	// ErrNotFound indicates a prompt, snapshot, alias, or file that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an attempt to create something that is
	// already present, such as overwriting an existing snapshot.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoChanges indicates a commit attempt when the working prompt
	// matches its current revision.
	ErrNoChanges = errors.New("no changes detected")

	// ErrUncommittedChanges indicates a checkout attempt while the working
	// prompt has uncommitted edits.
	ErrUncommittedChanges = errors.New("uncommitted changes")

	// ErrMetadataParse indicates a version header that could not be read
	// back from a prompt file.
	ErrMetadataParse = errors.New("cannot parse prompt metadata")

	// ErrAmbiguousRevision indicates an alias that resolves to more than
	// one revision.
	ErrAmbiguousRevision = errors.New("ambiguous revision reference")

	// ErrInvalidAlias indicates an alias that does not satisfy the alias
	// naming rules.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrInvalidPromptName indicates a prompt name that does not satisfy
	// the prompt naming rules.
	ErrInvalidPromptName = errors.New("invalid prompt name")

	// ErrNoSettings indicates that no mirascope settings file could be
	// found for the current project.
	ErrNoSettings = errors.New("mirascope settings not found")

	// ErrInvalidInput indicates malformed input such as a revision string
	// that is not zero-padded or a corrupt version file entry.
	ErrInvalidInput = errors.New("invalid input")
)
