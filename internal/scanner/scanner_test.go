package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates empty-ish files named names inside dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("# "+n), 0o644))
	}
}

func baseNames(files []string) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return names
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	t.Run("SelectsSuffixOnly", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "a.mdx", "b.md", "c.txt", "d.mdx")

		files, err := ListFiles(dir, ".mdx")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.mdx", "d.mdx"}, baseNames(files))
		assert.Equal(t, filepath.Join(dir, "a.mdx"), files[0])
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "lower.mdx", "UPPER.MDX", "Mixed.Mdx")

		files, err := ListFiles(dir, ".mdx")
		require.NoError(t, err)
		assert.Equal(t, []string{"lower.mdx"}, baseNames(files))
	})

	t.Run("DoesNotRecurse", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		nested := filepath.Join(dir, "nested")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		writeFiles(t, dir, "root.mdx")
		writeFiles(t, nested, "deep.mdx")

		files, err := ListFiles(dir, ".mdx")
		require.NoError(t, err)
		assert.Equal(t, []string{"root.mdx"}, baseNames(files))
	})

	t.Run("DirectoryWithSuffixIsListed", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.mdx"), 0o755))

		files, err := ListFiles(dir, ".mdx")
		require.NoError(t, err)
		assert.Equal(t, []string{"folder.mdx"}, baseNames(files))
	})

	t.Run("SortedByName", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "c.mdx", "a.mdx", "b.mdx")

		files, err := ListFiles(dir, ".mdx")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.mdx", "b.mdx", "c.mdx"}, baseNames(files))
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		t.Parallel()
		files, err := ListFiles(t.TempDir(), ".mdx")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("EmptySuffix", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "a.mdx")

		files, err := ListFiles(dir, "")
		require.NoError(t, err)
		assert.Nil(t, files)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		t.Parallel()
		files, err := ListFiles(filepath.Join(t.TempDir(), "nope"), ".mdx")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, files)
	})
}

func TestListFilesWithOptions(t *testing.T) {
	t.Parallel()

	t.Run("NoPatterns", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "a.mdx", "b.mdx")

		files, err := ListFilesWithOptions(ScanOptions{Root: dir, Suffix: ".mdx"})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("Exclude", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "post.mdx", "draft-one.mdx", "draft-two.mdx")

		files, err := ListFilesWithOptions(ScanOptions{
			Root:    dir,
			Suffix:  ".mdx",
			Exclude: []string{"draft-*"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"post.mdx"}, baseNames(files))
	})

	t.Run("Include", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "2024-a.mdx", "2025-b.mdx", "notes.mdx")

		files, err := ListFilesWithOptions(ScanOptions{
			Root:    dir,
			Suffix:  ".mdx",
			Include: []string{"202?-*"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-a.mdx", "2025-b.mdx"}, baseNames(files))
	})

	t.Run("IncludeAndExclude", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "2024-a.mdx", "2024-draft.mdx", "other.mdx")

		files, err := ListFilesWithOptions(ScanOptions{
			Root:    dir,
			Suffix:  ".mdx",
			Include: []string{"2024-*"},
			Exclude: []string{"*draft*"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-a.mdx"}, baseNames(files))
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "a.mdx")

		_, err := ListFilesWithOptions(ScanOptions{
			Root:    dir,
			Suffix:  ".mdx",
			Exclude: []string{"[invalid"},
		})
		assert.Error(t, err)
	})
}

func TestCompilePatterns(t *testing.T) {
	t.Parallel()

	compiled, err := CompilePatterns([]string{"*.mdx", "draft-?"})
	require.NoError(t, err)
	assert.Len(t, compiled, 2)
	assert.True(t, MatchesAny("x.mdx", compiled))
	assert.True(t, MatchesAny("draft-1", compiled))
	assert.False(t, MatchesAny("draft-12", compiled))

	_, err = CompilePatterns([]string{"ok", "[bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"[bad"`)
}
