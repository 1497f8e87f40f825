package driven

import "github.com/jimkring/mirascope/internal/core/domain"

// TemplateRenderer converts between the stored form of a prompt file
// (version metadata header plus body) and its parts. Rendering is
// deterministic and extracting a rendered file yields the same metadata
// and body back, so committed files re-render to themselves. Drift
// detection depends on that stability.
type TemplateRenderer interface {
	// Render produces the full file content for the given metadata and
	// body. Zero metadata renders to the bare body with no header.
	Render(meta domain.PromptMetadata, body string) string

	// Extract splits file content into its metadata header and body.
	// Content without a header yields zero metadata and the full content
	// as body. A recognized header line with a malformed value returns
	// an error wrapping domain.ErrMetadataParse.
	Extract(content string) (domain.PromptMetadata, string, error)
}
