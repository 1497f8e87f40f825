package driven

// Formatter normalizes a prompt file in place after it is written.
// Formatting is cosmetic and best effort: callers log failures and
// continue. Implementations must be idempotent so that formatting a
// committed file and its working copy can never introduce drift.
type Formatter interface {
	// Format rewrites the file at path into canonical form.
	Format(path string) error
}
