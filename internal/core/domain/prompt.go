package domain

import (
	"fmt"
	"strings"
)

// PromptFileExt is the file extension of working prompts and snapshots.
const PromptFileExt = ".prompt"

// PromptMetadata is the version header carried at the top of committed
// prompt files. A zero metadata renders to no header at all.
type PromptMetadata struct {
	// Revision is the snapshot's own revision number.
	Revision Revision

	// PrevRevision is the revision the snapshot was derived from, or
	// RevisionNone for a first commit.
	PrevRevision Revision

	// Alias is an optional human-readable name for the snapshot.
	Alias string

	// Tags are free-form labels. Commits with auto-tagging enabled carry
	// a "version:NNNN" tag naming their own revision.
	Tags []string
}

// WithVersionTag returns a copy of m whose tags carry the version tag
// for rev, replacing any version tag from an earlier commit.
func (m PromptMetadata) WithVersionTag(rev Revision) PromptMetadata {
	tags := make([]string, 0, len(m.Tags)+1)
	for _, t := range m.Tags {
		if !strings.HasPrefix(t, "version:") {
			tags = append(tags, t)
		}
	}
	m.Tags = append(tags, VersionTag(rev))
	return m
}

// ValidatePromptName checks name against the prompt naming rules: the
// first character must be a letter, digit or underscore, and the rest
// letters, digits, dots, underscores or hyphens.
func ValidatePromptName(name string) error {
	if name == "" {
		return fmt.Errorf("prompt name is empty: %w", ErrInvalidPromptName)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isNameChar(c) || (i > 0 && (c == '.' || c == '-')) {
			continue
		}
		return fmt.Errorf("prompt name %q contains %q: %w", name, string(c), ErrInvalidPromptName)
	}
	return nil
}

// ParsePromptName normalizes a prompt argument as typed on the command
// line. A trailing ".prompt" extension is stripped so "greeter" and
// "greeter.prompt" name the same prompt.
func ParsePromptName(arg string) (string, error) {
	name := strings.TrimSuffix(strings.TrimSpace(arg), PromptFileExt)
	if err := ValidatePromptName(name); err != nil {
		return "", err
	}
	return name, nil
}

// PromptFileName returns the file name of a working prompt.
func PromptFileName(name string) string {
	return name + PromptFileExt
}

// SnapshotFileName returns the file name of one committed snapshot, for
// example "0002_greeter.prompt".
func SnapshotFileName(name string, rev Revision) string {
	return rev.String() + "_" + name + PromptFileExt
}

// ParseSnapshotFileName inverts SnapshotFileName for the given prompt,
// returning the revision encoded in fileName. It returns ErrInvalidInput
// for files that do not belong to the prompt's snapshot series.
func ParseSnapshotFileName(name, fileName string) (Revision, error) {
	rest, ok := strings.CutSuffix(fileName, "_"+PromptFileName(name))
	if !ok {
		return RevisionNone, fmt.Errorf("file %q is not a snapshot of prompt %q: %w", fileName, name, ErrInvalidInput)
	}
	rev, err := ParseRevision(rest)
	if err != nil || rev.IsNone() {
		return RevisionNone, fmt.Errorf("file %q is not a snapshot of prompt %q: %w", fileName, name, ErrInvalidInput)
	}
	return rev, nil
}

// ValidateAlias checks alias against the alias naming rules: the first
// character must be a letter and the rest letters, digits, dots,
// underscores or hyphens. Starting with a letter keeps aliases apart
// from revision numbers. The empty alias is valid and means "none".
func ValidateAlias(alias string) error {
	if alias == "" {
		return nil
	}
	if !isLetter(alias[0]) {
		return fmt.Errorf("alias %q must start with a letter: %w", alias, ErrInvalidAlias)
	}
	for i := 1; i < len(alias); i++ {
		c := alias[i]
		if isNameChar(c) || c == '.' || c == '-' {
			continue
		}
		return fmt.Errorf("alias %q contains %q: %w", alias, string(c), ErrInvalidAlias)
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
