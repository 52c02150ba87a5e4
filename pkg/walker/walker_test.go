package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
}

func paths(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Path)
	}
	return out
}

func TestWalk(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("missing_root_fails", func(t *testing.T) {
		_, err := Walk(ctx, filepath.Join(t.TempDir(), "nope"), Filter{})
		require.Error(t, err, "walking a missing root should fail")
	})

	t.Run("non_recursive_skips_subfolders", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "top.txt"), "a")
		writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "b")

		got, err := Walk(ctx, dir, Filter{})
		require.NoError(t, err, "walking")
		assert.Equal(t, []string{filepath.Join(dir, "top.txt")}, paths(got))
	})

	t.Run("recursive_visits_subfolders", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "top.txt"), "a")
		writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "b")

		got, err := Walk(ctx, dir, Filter{Recursive: true})
		require.NoError(t, err, "walking")
		assert.ElementsMatch(t,
			[]string{filepath.Join(dir, "top.txt"), filepath.Join(dir, "sub", "nested.txt")},
			paths(got))
	})

	t.Run("extension_filter_is_case_insensitive", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keep.TXT"), "a")
		writeFile(t, filepath.Join(dir, "drop.html"), "b")

		got, err := Walk(ctx, dir, Filter{Extensions: []string{"txt"}})
		require.NoError(t, err, "walking")
		require.Len(t, got, 1)
		assert.Equal(t, filepath.Join(dir, "keep.TXT"), got[0].Path)
		assert.Equal(t, ".txt", got[0].Ext)
	})

	t.Run("extension_accepts_leading_dot", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keep.txt"), "a")

		got, err := Walk(ctx, dir, Filter{Extensions: []string{".txt"}})
		require.NoError(t, err, "walking")
		assert.Len(t, got, 1)
	})

	t.Run("max_size_rejects_large_files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "small.txt"), "ab")
		writeFile(t, filepath.Join(dir, "large.txt"), "abcdefghij")

		got, err := Walk(ctx, dir, Filter{MaxSize: 5})
		require.NoError(t, err, "walking")
		require.Len(t, got, 1)
		assert.Equal(t, filepath.Join(dir, "small.txt"), got[0].Path)
	})

	t.Run("ignore_patterns_use_doublestar", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keep.txt"), "a")
		writeFile(t, filepath.Join(dir, "vendor", "drop.txt"), "b")

		got, err := Walk(ctx, dir, Filter{
			Recursive:      true,
			IgnorePatterns: []string{"vendor/**"},
		})
		require.NoError(t, err, "walking")
		assert.Equal(t, []string{filepath.Join(dir, "keep.txt")}, paths(got))
	})

	t.Run("reports_size", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "f.txt"), "hello")

		got, err := Walk(ctx, dir, Filter{})
		require.NoError(t, err, "walking")
		require.Len(t, got, 1)
		assert.Equal(t, int64(5), got[0].Size)
	})
}

func TestFilterMatches(t *testing.T) {
	t.Run("empty_filter_matches_everything", func(t *testing.T) {
		assert.True(t, Filter{}.Matches("a/b.txt", ".txt", 1<<30))
	})

	t.Run("zero_max_size_means_no_limit", func(t *testing.T) {
		assert.True(t, Filter{MaxSize: 0}.Matches("f.bin", ".bin", 1<<40))
	})
}
