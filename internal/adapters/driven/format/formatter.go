package format

import (
	"fmt"
	"os"
	"strings"

	"github.com/jimkring/mirascope/internal/core/ports/driven"
)

// Ensure PromptFormatter implements the interface.
var _ driven.Formatter = (*PromptFormatter)(nil)

// PromptFormatter normalizes prompt files after they are written: line
// endings become LF, trailing whitespace is stripped from every line,
// and non-empty files end in exactly one newline. The transformation is
// idempotent, and commits format the snapshot and the working copy with
// the same rules so formatting never shows up as drift.
type PromptFormatter struct{}

// NewPromptFormatter creates a formatter with the canonical rules.
func NewPromptFormatter() *PromptFormatter {
	return &PromptFormatter{}
}

// Format rewrites the file at path into canonical form. Files already
// in canonical form are left untouched.
func (f *PromptFormatter) Format(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}

	normalized := Normalize(string(data))
	if normalized == string(data) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(normalized), info.Mode().Perm()); err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return nil
}

// Normalize returns the canonical form of prompt file content.
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	out := strings.Join(lines, "\n")
	return strings.TrimRight(out, "\n") + "\n"
}
