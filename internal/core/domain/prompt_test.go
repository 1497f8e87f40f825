package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidatePromptName tests the prompt naming rules
func TestValidatePromptName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "greeter", false},
		{"underscore prefix", "_draft", false},
		{"digits", "v2_prompt", false},
		{"dots and hyphens", "team.greeter-v2", false},
		{"empty", "", true},
		{"leading dot", ".hidden", true},
		{"leading hyphen", "-x", true},
		{"path separator", "a/b", true},
		{"backslash", `a\b`, true},
		{"space", "a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePromptName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPromptName))
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestParsePromptName tests prompt argument normalization
func TestParsePromptName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare name", "greeter", "greeter", false},
		{"with extension", "greeter.prompt", "greeter", false},
		{"surrounding space", "  greeter  ", "greeter", false},
		{"extension only", ".prompt", "", true},
		{"empty", "", "", true},
		{"path", "prompts/greeter", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePromptName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSnapshotFileName tests snapshot naming and its inverse
func TestSnapshotFileName(t *testing.T) {
	assert.Equal(t, "0001_greeter.prompt", SnapshotFileName("greeter", Revision(1)))
	assert.Equal(t, "0042_a_b.prompt", SnapshotFileName("a_b", Revision(42)))

	rev, err := ParseSnapshotFileName("greeter", "0001_greeter.prompt")
	require.NoError(t, err)
	assert.Equal(t, Revision(1), rev)

	rev, err = ParseSnapshotFileName("a_b", "0042_a_b.prompt")
	require.NoError(t, err)
	assert.Equal(t, Revision(42), rev)
}

// TestParseSnapshotFileName_Rejects tests files outside the snapshot series
func TestParseSnapshotFileName_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{"version pointer file", "version.txt"},
		{"other prompt", "0001_other.prompt"},
		{"unpadded revision", "1_greeter.prompt"},
		{"no revision", "_greeter.prompt"},
		{"no separator", "0001greeter.prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshotFileName("greeter", tt.fileName)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

// TestValidateAlias tests the alias naming rules
func TestValidateAlias(t *testing.T) {
	tests := []struct {
		name    string
		alias   string
		wantErr bool
	}{
		{"empty means none", "", false},
		{"simple", "stable", false},
		{"mixed", "release-2.1_rc", false},
		{"purely numeric", "0001", true},
		{"leading digit", "2stable", true},
		{"leading underscore", "_x", true},
		{"space", "my alias", true},
		{"slash", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAlias(tt.alias)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidAlias))
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestPromptMetadata_WithVersionTag tests version tag stamping
func TestPromptMetadata_WithVersionTag(t *testing.T) {
	t.Run("adds tag to empty metadata", func(t *testing.T) {
		meta := PromptMetadata{}.WithVersionTag(Revision(1))
		assert.Equal(t, []string{"version:0001"}, meta.Tags)
	})

	t.Run("replaces previous version tag", func(t *testing.T) {
		meta := PromptMetadata{Tags: []string{"version:0001", "prod"}}
		got := meta.WithVersionTag(Revision(2))
		assert.Equal(t, []string{"prod", "version:0002"}, got.Tags)
	})

	t.Run("keeps user tags", func(t *testing.T) {
		meta := PromptMetadata{Tags: []string{"prod", "reviewed"}}
		got := meta.WithVersionTag(Revision(3))
		assert.Equal(t, []string{"prod", "reviewed", "version:0003"}, got.Tags)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		meta := PromptMetadata{Tags: []string{"version:0001"}}
		_ = meta.WithVersionTag(Revision(2))
		assert.Equal(t, []string{"version:0001"}, meta.Tags)
	})
}
