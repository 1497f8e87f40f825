package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimkring/mirascope/internal/core/domain"
)

func testStore(t *testing.T) *VersionStore {
	t.Helper()
	root := t.TempDir()
	return NewVersionStore(domain.Settings{
		MirascopeLocation: filepath.Join(root, ".mirascope"),
		PromptsLocation:   filepath.Join(root, "prompts"),
		VersionsLocation:  filepath.Join(root, ".mirascope", "versions"),
		VersionFileName:   "version.txt",
		AutoTag:           true,
	})
}

// TestVersionStore_ReadPrompt tests working file reads
func TestVersionStore_ReadPrompt(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := store.ReadPrompt(ctx, "greeter")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("existing file", func(t *testing.T) {
		_, err := store.WritePrompt(ctx, "greeter", "Hello.\n")
		require.NoError(t, err)

		content, err := store.ReadPrompt(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, "Hello.\n", content)
	})
}

// TestVersionStore_WritePrompt tests working file writes
func TestVersionStore_WritePrompt(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	path, err := store.WritePrompt(ctx, "greeter", "v1\n")
	require.NoError(t, err)
	assert.Equal(t, store.PromptPath("greeter"), path)

	// Overwriting is allowed for working files.
	_, err = store.WritePrompt(ctx, "greeter", "v2\n")
	require.NoError(t, err)

	content, err := store.ReadPrompt(ctx, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "v2\n", content)

	// No temp file left behind.
	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

// TestVersionStore_ListPrompts tests prompt discovery
func TestVersionStore_ListPrompts(t *testing.T) {
	ctx := context.Background()

	t.Run("missing prompts directory", func(t *testing.T) {
		store := testStore(t)
		_, err := store.ListPrompts(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("sorted prompt names", func(t *testing.T) {
		store := testStore(t)
		for _, name := range []string{"zeta", "alpha", "mid"} {
			_, err := store.WritePrompt(ctx, name, "x\n")
			require.NoError(t, err)
		}
		// Non-prompt entries are skipped.
		require.NoError(t, os.WriteFile(filepath.Join(store.settings.PromptsLocation, "notes.txt"), []byte("n"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(store.settings.PromptsLocation, "sub.prompt"), 0o755))

		names, err := store.ListPrompts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
	})
}

// TestVersionStore_Snapshots tests snapshot writes, reads, and immutability
func TestVersionStore_Snapshots(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	path, err := store.WriteSnapshot(ctx, "greeter", 1, "# revision: 0001\n\nHello.\n")
	require.NoError(t, err)
	assert.Equal(t, store.SnapshotPath("greeter", 1), path)
	assert.Equal(t, "0001_greeter.prompt", filepath.Base(path))

	content, err := store.ReadSnapshot(ctx, "greeter", 1)
	require.NoError(t, err)
	assert.Equal(t, "# revision: 0001\n\nHello.\n", content)

	t.Run("existing snapshot is never overwritten", func(t *testing.T) {
		_, err := store.WriteSnapshot(ctx, "greeter", 1, "other content\n")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))

		content, err := store.ReadSnapshot(ctx, "greeter", 1)
		require.NoError(t, err)
		assert.Equal(t, "# revision: 0001\n\nHello.\n", content)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := store.ReadSnapshot(ctx, "greeter", 99)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

// TestVersionStore_ListRevisions tests snapshot series discovery
func TestVersionStore_ListRevisions(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	t.Run("no versions directory", func(t *testing.T) {
		revs, err := store.ListRevisions(ctx, "greeter")
		require.NoError(t, err)
		assert.Empty(t, revs)
	})

	t.Run("ascending order, foreign files skipped", func(t *testing.T) {
		for _, rev := range []domain.Revision{3, 1, 2} {
			_, err := store.WriteSnapshot(ctx, "greeter", rev, "content\n")
			require.NoError(t, err)
		}
		require.NoError(t, store.WritePointer(ctx, "greeter", domain.VersionPointer{CurrentRevision: 3, LatestRevision: 3}))
		dir := store.settings.PromptVersionsDir("greeter")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_other.prompt"), []byte("x"), 0o644))

		revs, err := store.ListRevisions(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, []domain.Revision{1, 2, 3}, revs)
	})
}

// TestVersionStore_ReadPointer tests pointer file parsing
func TestVersionStore_ReadPointer(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file reads as zero pointer", func(t *testing.T) {
		store := testStore(t)
		pointer, err := store.ReadPointer(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, domain.VersionPointer{}, pointer)
	})

	t.Run("both keys", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "current_revision=0002\nlatest_revision=0005\n")

		pointer, err := store.ReadPointer(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, domain.Revision(2), pointer.CurrentRevision)
		assert.Equal(t, domain.Revision(5), pointer.LatestRevision)
	})

	t.Run("empty value means none", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "current_revision=\nlatest_revision=0001\n")

		pointer, err := store.ReadPointer(ctx, "greeter")
		require.NoError(t, err)
		assert.True(t, pointer.CurrentRevision.IsNone())
		assert.Equal(t, domain.Revision(1), pointer.LatestRevision)
	})

	t.Run("unknown lines ignored", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "# managed by mirascope\nowner=team-a\ncurrent_revision=0001\nlatest_revision=0001\n")

		pointer, err := store.ReadPointer(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, domain.Revision(1), pointer.CurrentRevision)
	})

	t.Run("corrupt value", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "current_revision=banana\n")

		_, err := store.ReadPointer(ctx, "greeter")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

// TestVersionStore_WritePointer tests pointer file rewrites
func TestVersionStore_WritePointer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates file and directory", func(t *testing.T) {
		store := testStore(t)
		err := store.WritePointer(ctx, "greeter", domain.VersionPointer{CurrentRevision: 1, LatestRevision: 1})
		require.NoError(t, err)

		data, err := os.ReadFile(store.PointerPath("greeter"))
		require.NoError(t, err)
		assert.Equal(t, "current_revision=0001\nlatest_revision=0001\n", string(data))
	})

	t.Run("preserves unknown lines in place", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "# managed by mirascope\ncurrent_revision=0001\nowner=team-a\nlatest_revision=0002\n")

		err := store.WritePointer(ctx, "greeter", domain.VersionPointer{CurrentRevision: 3, LatestRevision: 3})
		require.NoError(t, err)

		data, err := os.ReadFile(store.PointerPath("greeter"))
		require.NoError(t, err)
		assert.Equal(t, "# managed by mirascope\ncurrent_revision=0003\nowner=team-a\nlatest_revision=0003\n", string(data))
	})

	t.Run("appends missing keys", func(t *testing.T) {
		store := testStore(t)
		writePointerFile(t, store, "greeter", "owner=team-a\n")

		err := store.WritePointer(ctx, "greeter", domain.VersionPointer{CurrentRevision: 1, LatestRevision: 1})
		require.NoError(t, err)

		data, err := os.ReadFile(store.PointerPath("greeter"))
		require.NoError(t, err)
		assert.Equal(t, "owner=team-a\ncurrent_revision=0001\nlatest_revision=0001\n", string(data))
	})

	t.Run("round trips through ReadPointer", func(t *testing.T) {
		store := testStore(t)
		want := domain.VersionPointer{CurrentRevision: 2, LatestRevision: 7}
		require.NoError(t, store.WritePointer(ctx, "greeter", want))

		got, err := store.ReadPointer(ctx, "greeter")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func writePointerFile(t *testing.T, store *VersionStore, name, content string) {
	t.Helper()
	path := store.PointerPath(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
