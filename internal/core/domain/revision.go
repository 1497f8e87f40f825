package domain

import (
	"fmt"
	"strconv"
)

// revisionWidth is the minimum number of digits in the rendered form of
// a revision number. Numbers above 9999 grow past it naturally.
const revisionWidth = 4

// Revision identifies one immutable snapshot of a prompt. Revisions are
// numbered from 1 per prompt; the zero value means "no revision".
type Revision int

// RevisionNone is the zero revision, rendered as the empty string.
const RevisionNone Revision = 0

// IsNone reports whether r refers to no snapshot at all.
func (r Revision) IsNone() bool {
	return r <= RevisionNone
}

// Next returns the revision number that follows r.
func (r Revision) Next() Revision {
	return r + 1
}

// String renders r in its zero-padded file form, for example "0001".
// RevisionNone renders as the empty string.
func (r Revision) String() string {
	if r.IsNone() {
		return ""
	}
	return fmt.Sprintf("%0*d", revisionWidth, int(r))
}

// ParseRevision parses the rendered form of a revision number. The empty
// string parses to RevisionNone. Anything else must be a zero-padded
// decimal of at least four digits, so "0001" is valid while "1", "0000"
// and "00012" are not.
func ParseRevision(s string) (Revision, error) {
	if s == "" {
		return RevisionNone, nil
	}
	if len(s) < revisionWidth || !isDigits(s) {
		return RevisionNone, fmt.Errorf("revision %q is not a zero-padded revision number: %w", s, ErrInvalidInput)
	}
	if len(s) > revisionWidth && s[0] == '0' {
		return RevisionNone, fmt.Errorf("revision %q has excess leading zeros: %w", s, ErrInvalidInput)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return RevisionNone, fmt.Errorf("revision %q: %w", s, ErrInvalidInput)
	}
	if n < 1 {
		return RevisionNone, fmt.Errorf("revision %q is below the first revision: %w", s, ErrInvalidInput)
	}
	return Revision(n), nil
}

// IsRevisionNumber reports whether s is made of digits only. Checkout
// targets of this shape refer to revision numbers rather than aliases.
func IsRevisionNumber(s string) bool {
	return s != "" && isDigits(s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// VersionTag returns the tag recorded on a snapshot to mark its revision
// number, for example "version:0002".
func VersionTag(r Revision) string {
	return "version:" + r.String()
}

// VersionPointer is the per-prompt record kept in the version file. It
// names the revision the working prompt was last synchronized with and
// the highest revision ever committed. The zero value describes a prompt
// that has never been committed.
type VersionPointer struct {
	// CurrentRevision is the revision the working prompt derives from,
	// or RevisionNone before the first commit.
	CurrentRevision Revision

	// LatestRevision is the highest revision committed so far, or
	// RevisionNone before the first commit. It never decreases.
	LatestRevision Revision
}

// NextRevision returns the number the next commit will receive.
func (p VersionPointer) NextRevision() Revision {
	return p.LatestRevision.Next()
}
