package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
	"github.com/jimkring/mirascope/internal/core/ports/driving"
	"github.com/jimkring/mirascope/internal/logger"
)

// Ensure VersionService implements the interface.
var _ driving.VersionService = (*VersionService)(nil)

// VersionService implements prompt version control on the version
// store: drift detection, commits, and checkouts. Mutations run inside
// the prompt's file lock so concurrent invocations serialize instead of
// corrupting the pointer or skipping revision numbers.
type VersionService struct {
	settings  domain.Settings
	store     driven.VersionStore
	renderer  driven.TemplateRenderer
	formatter driven.Formatter
	locker    driven.Locker
}

// NewVersionService creates a new version service. The formatter may be
// nil, in which case committed files are left unformatted.
func NewVersionService(
	settings domain.Settings,
	store driven.VersionStore,
	renderer driven.TemplateRenderer,
	formatter driven.Formatter,
	locker driven.Locker,
) *VersionService {
	return &VersionService{
		settings:  settings,
		store:     store,
		renderer:  renderer,
		formatter: formatter,
		locker:    locker,
	}
}

// CheckStatus reports whether a prompt's working file has changed since
// its current revision.
func (s *VersionService) CheckStatus(ctx context.Context, prompt string) (*driving.StatusResult, error) {
	name, err := domain.ParsePromptName(prompt)
	if err != nil {
		return nil, err
	}
	logger.Debug("Checking status of prompt %q", name)
	return s.status(ctx, name)
}

// status implements drift detection. Mutating callers run it inside the
// prompt's lock.
func (s *VersionService) status(ctx context.Context, name string) (*driving.StatusResult, error) {
	workingContent, err := s.store.ReadPrompt(ctx, name)
	if err != nil {
		return nil, err
	}
	_, workingBody, err := s.renderer.Extract(workingContent)
	if err != nil {
		return nil, fmt.Errorf("prompt %s: %w", name, err)
	}

	result := &driving.StatusResult{
		PromptName: name,
		Path:       s.store.PromptPath(name),
	}

	pointer, err := s.store.ReadPointer(ctx, name)
	if err != nil {
		return nil, err
	}
	result.CurrentRevision = pointer.CurrentRevision
	if pointer.CurrentRevision.IsNone() {
		// Never committed counts as changed.
		result.Changed = true
		return result, nil
	}

	snapshotContent, err := s.store.ReadSnapshot(ctx, name, pointer.CurrentRevision)
	if err != nil {
		// The pointer names a revision the store does not have.
		return nil, fmt.Errorf("current revision %s of prompt %s: %w", pointer.CurrentRevision, name, err)
	}
	_, snapshotBody, err := s.renderer.Extract(snapshotContent)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s of prompt %s: %w", pointer.CurrentRevision, name, err)
	}

	// Drift is a body difference. Metadata-only differences, the header
	// rewrite from a commit for instance, do not count.
	result.Changed = workingBody != snapshotBody
	logger.Debug("Prompt %q changed=%t against revision %s", name, result.Changed, pointer.CurrentRevision)
	return result, nil
}

// Add commits the working prompt as the next revision.
func (s *VersionService) Add(ctx context.Context, prompt, alias string) (*driving.AddResult, error) {
	name, err := domain.ParsePromptName(prompt)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAlias(alias); err != nil {
		return nil, err
	}

	logger.Section("Add")
	logger.Debug("Committing prompt %q", name)

	var result *driving.AddResult
	err = s.locker.WithLock(s.store.PointerPath(name), func() error {
		status, err := s.status(ctx, name)
		if err != nil {
			return err
		}
		if !status.Changed {
			return fmt.Errorf("prompt %s: %w", name, domain.ErrNoChanges)
		}

		pointer, err := s.store.ReadPointer(ctx, name)
		if err != nil {
			return err
		}
		next := pointer.NextRevision()

		// A commit that wrote its snapshot but failed before the pointer
		// update leaves a snapshot past latest_revision. Number past it
		// rather than colliding with it.
		revs, err := s.store.ListRevisions(ctx, name)
		if err != nil {
			return err
		}
		for _, rev := range revs {
			if rev >= next {
				next = rev.Next()
			}
		}
		logger.Debug("Next revision: %s (current %q, latest %q)",
			next, pointer.CurrentRevision, pointer.LatestRevision)

		workingContent, err := s.store.ReadPrompt(ctx, name)
		if err != nil {
			return err
		}
		workingMeta, body, err := s.renderer.Extract(workingContent)
		if err != nil {
			return fmt.Errorf("prompt %s: %w", name, err)
		}

		meta := domain.PromptMetadata{
			Revision:     next,
			PrevRevision: pointer.CurrentRevision,
			Alias:        alias,
			Tags:         workingMeta.Tags,
		}
		if s.settings.AutoTag {
			meta = meta.WithVersionTag(next)
		}
		content := s.renderer.Render(meta, body)

		snapshotPath, err := s.store.WriteSnapshot(ctx, name, next, content)
		if err != nil {
			return err
		}
		logger.Info("Wrote snapshot %s", snapshotPath)

		newPointer := domain.VersionPointer{CurrentRevision: next, LatestRevision: next}
		if err := s.store.WritePointer(ctx, name, newPointer); err != nil {
			return err
		}

		// Rewrite the working file so it carries the new header. Its
		// body is unchanged, so this never creates drift.
		promptPath, err := s.store.WritePrompt(ctx, name, content)
		if err != nil {
			return err
		}

		s.format(snapshotPath)
		s.format(promptPath)

		result = &driving.AddResult{
			Revision:     next,
			SnapshotPath: snapshotPath,
			PromptPath:   promptPath,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Committed revision %s of prompt %q", result.Revision, name)
	return result, nil
}

// Use rewrites the working prompt from a committed snapshot.
func (s *VersionService) Use(ctx context.Context, prompt, target, version string) (*driving.UseResult, error) {
	name, err := domain.ParsePromptName(prompt)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, fmt.Errorf("revision target is empty: %w", domain.ErrInvalidInput)
	}

	logger.Section("Use")
	logger.Debug("Checking out prompt %q, target %q, version %q", name, target, version)

	var result *driving.UseResult
	err = s.locker.WithLock(s.store.PointerPath(name), func() error {
		status, err := s.status(ctx, name)
		if err != nil {
			return err
		}
		if status.Changed {
			return fmt.Errorf("prompt %s has uncommitted changes: %w", name, domain.ErrUncommittedChanges)
		}

		rev, content, err := s.resolveRevision(ctx, name, target, version)
		if err != nil {
			return err
		}
		logger.Debug("Resolved target to revision %s", rev)

		// Extract and re-render to assert the snapshot round trips
		// before anything is overwritten.
		meta, body, err := s.renderer.Extract(content)
		if err != nil {
			return fmt.Errorf("snapshot %s of prompt %s: %w", rev, name, err)
		}
		promptPath, err := s.store.WritePrompt(ctx, name, s.renderer.Render(meta, body))
		if err != nil {
			return err
		}

		pointer, err := s.store.ReadPointer(ctx, name)
		if err != nil {
			return err
		}
		pointer.CurrentRevision = rev
		if err := s.store.WritePointer(ctx, name, pointer); err != nil {
			return err
		}

		s.format(promptPath)

		result = &driving.UseResult{
			Revision:     rev,
			SnapshotPath: s.store.SnapshotPath(name, rev),
			PromptPath:   promptPath,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Using revision %s of prompt %q", result.Revision, name)
	return result, nil
}

// resolveRevision maps a checkout target to one committed snapshot.
// Purely numeric targets are revision numbers; anything else is an
// alias looked up in snapshot metadata, optionally pinned to one
// revision by version.
func (s *VersionService) resolveRevision(ctx context.Context, name, target, version string) (domain.Revision, string, error) {
	if domain.IsRevisionNumber(target) {
		if version != "" {
			return 0, "", fmt.Errorf("revision %s takes no version argument: %w", target, domain.ErrInvalidInput)
		}
		rev, err := domain.ParseRevision(target)
		if err != nil {
			return 0, "", err
		}
		content, err := s.store.ReadSnapshot(ctx, name, rev)
		if err != nil {
			return 0, "", err
		}
		return rev, content, nil
	}

	if err := domain.ValidateAlias(target); err != nil {
		return 0, "", err
	}
	var pin domain.Revision
	if version != "" {
		var err error
		if pin, err = domain.ParseRevision(version); err != nil {
			return 0, "", err
		}
	}

	revs, err := s.store.ListRevisions(ctx, name)
	if err != nil {
		return 0, "", err
	}

	var matches []domain.Revision
	contents := make(map[domain.Revision]string)
	for _, rev := range revs {
		content, err := s.store.ReadSnapshot(ctx, name, rev)
		if err != nil {
			return 0, "", err
		}
		meta, _, err := s.renderer.Extract(content)
		if err != nil {
			return 0, "", fmt.Errorf("snapshot %s of prompt %s: %w", rev, name, err)
		}
		if meta.Alias != target {
			continue
		}
		matches = append(matches, rev)
		contents[rev] = content
	}

	if len(matches) == 0 {
		return 0, "", fmt.Errorf("alias %q of prompt %s: %w", target, name, domain.ErrNotFound)
	}
	if !pin.IsNone() {
		for _, rev := range matches {
			if rev == pin {
				return rev, contents[rev], nil
			}
		}
		return 0, "", fmt.Errorf("alias %q does not name revision %s of prompt %s: %w", target, pin, name, domain.ErrNotFound)
	}
	if len(matches) > 1 {
		return 0, "", fmt.Errorf("alias %q of prompt %s matches revisions %s: %w",
			target, name, joinRevisions(matches), domain.ErrAmbiguousRevision)
	}
	return matches[0], contents[matches[0]], nil
}

// ListPrompts returns the names of all working prompts, sorted.
func (s *VersionService) ListPrompts(ctx context.Context) ([]string, error) {
	return s.store.ListPrompts(ctx)
}

// format is best effort; failures are logged, never raised.
func (s *VersionService) format(path string) {
	if s.formatter == nil {
		return
	}
	if err := s.formatter.Format(path); err != nil {
		logger.Warn("Format failed: %v", err)
	}
}

func joinRevisions(revs []domain.Revision) string {
	parts := make([]string, len(revs))
	for i, rev := range revs {
		parts[i] = rev.String()
	}
	return strings.Join(parts, ", ")
}
