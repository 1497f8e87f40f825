package template

import (
	"fmt"
	"strings"

	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
)

// Header keys in their fixed rendering order.
const (
	keyRevision     = "revision"
	keyPrevRevision = "prev_revision"
	keyAlias        = "alias"
	keyTags         = "tags"
)

const (
	headerPrefix = "# "
	tagSeparator = ", "
)

// Ensure HeaderRenderer implements the interface.
var _ driven.TemplateRenderer = (*HeaderRenderer)(nil)

// HeaderRenderer implements the prompt file framing: a block of
// "# key: value" comment lines above the body, separated from it by one
// blank line. Field order is fixed and absent fields omit their line,
// which keeps the rendering deterministic and the round trip lossless.
//
// Only the recognized keys form the header. A leading "# " line with any
// other key, a markdown heading for instance, belongs to the body.
type HeaderRenderer struct{}

// NewHeaderRenderer creates a renderer for the canonical header framing.
func NewHeaderRenderer() *HeaderRenderer {
	return &HeaderRenderer{}
}

// Render produces the stored form of a prompt file.
func (r *HeaderRenderer) Render(meta domain.PromptMetadata, body string) string {
	var b strings.Builder
	writeField(&b, keyRevision, meta.Revision.String())
	writeField(&b, keyPrevRevision, meta.PrevRevision.String())
	writeField(&b, keyAlias, meta.Alias)
	writeField(&b, keyTags, strings.Join(meta.Tags, tagSeparator))
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(headerPrefix)
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

// Extract splits stored prompt content back into metadata and body.
func (r *HeaderRenderer) Extract(content string) (domain.PromptMetadata, string, error) {
	var meta domain.PromptMetadata
	seen := map[string]bool{}

	rest := content
	for {
		line, tail, found := strings.Cut(rest, "\n")
		if !found {
			// A header line needs a trailing newline to count as one.
			break
		}
		key, value, ok := parseHeaderLine(line)
		if !ok {
			break
		}
		if seen[key] {
			return domain.PromptMetadata{}, "", fmt.Errorf("duplicate header field %q: %w", key, domain.ErrMetadataParse)
		}
		seen[key] = true
		if err := setField(&meta, key, value); err != nil {
			return domain.PromptMetadata{}, "", err
		}
		rest = tail
	}

	if len(seen) > 0 {
		// Consume the blank separator line between header and body.
		rest = strings.TrimPrefix(rest, "\n")
	}
	return meta, rest, nil
}

// parseHeaderLine returns the recognized key and its value, or ok=false
// when the line is body content.
func parseHeaderLine(line string) (key, value string, ok bool) {
	entry, found := strings.CutPrefix(line, headerPrefix)
	if !found {
		return "", "", false
	}
	key, value, found = strings.Cut(entry, ": ")
	if !found {
		return "", "", false
	}
	switch key {
	case keyRevision, keyPrevRevision, keyAlias, keyTags:
		return key, value, true
	default:
		return "", "", false
	}
}

func setField(meta *domain.PromptMetadata, key, value string) error {
	switch key {
	case keyRevision:
		rev, err := domain.ParseRevision(value)
		if err != nil {
			return fmt.Errorf("header field %q: %w", key, domain.ErrMetadataParse)
		}
		meta.Revision = rev
	case keyPrevRevision:
		rev, err := domain.ParseRevision(value)
		if err != nil {
			return fmt.Errorf("header field %q: %w", key, domain.ErrMetadataParse)
		}
		meta.PrevRevision = rev
	case keyAlias:
		if err := domain.ValidateAlias(value); err != nil {
			return fmt.Errorf("header field %q: %w", key, domain.ErrMetadataParse)
		}
		meta.Alias = value
	case keyTags:
		meta.Tags = splitTags(value)
	}
	return nil
}

func splitTags(value string) []string {
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
