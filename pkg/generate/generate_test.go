package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "listing %s", dir)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestParseNaming(t *testing.T) {
	t.Run("known_names", func(t *testing.T) {
		got, err := ParseNaming("random")
		require.NoError(t, err)
		assert.Equal(t, Random, got)

		got, err = ParseNaming("Sequential")
		require.NoError(t, err)
		assert.Equal(t, Sequential, got)
	})

	t.Run("unknown_name_fails", func(t *testing.T) {
		_, err := ParseNaming("alphabetical")
		require.Error(t, err)
	})
}

func TestCreateDummyFiles(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("creates_exact_count", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{Extension: "txt", Naming: Random}

		created, err := gen.CreateDummyFiles(ctx, dir, 10)
		require.NoError(t, err, "creating dummy files")
		assert.Len(t, created, 10)
		assert.Len(t, listDir(t, dir), 10)
	})

	t.Run("creates_missing_folder", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "not", "yet", "there")
		gen := &Generator{Extension: "txt"}

		created, err := gen.CreateDummyFiles(ctx, dir, 1)
		require.NoError(t, err, "creating dummy files")
		assert.Len(t, created, 1)
		assert.DirExists(t, dir)
	})

	t.Run("never_overwrites_existing_files", func(t *testing.T) {
		dir := t.TempDir()
		existing := filepath.Join(dir, "keep.txt")
		require.NoError(t, os.WriteFile(existing, []byte("precious"), 0o644))

		gen := &Generator{Extension: "txt", Naming: Random}
		created, err := gen.CreateDummyFiles(ctx, dir, 5)
		require.NoError(t, err, "creating dummy files")

		assert.NotContains(t, created, existing)
		content, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "precious", string(content))
		assert.Len(t, listDir(t, dir), 6)
	})

	t.Run("files_are_empty_without_content", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{Extension: "txt"}

		created, err := gen.CreateDummyFiles(ctx, dir, 1)
		require.NoError(t, err, "creating dummy files")

		info, err := os.Stat(created[0])
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("content_is_written_when_set", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{Extension: "txt", Content: "placeholder"}

		created, err := gen.CreateDummyFiles(ctx, dir, 1)
		require.NoError(t, err, "creating dummy files")

		content, err := os.ReadFile(created[0])
		require.NoError(t, err)
		assert.Equal(t, "placeholder", string(content))
	})

	t.Run("extension_dot_is_normalized", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{Extension: ".log"}

		created, err := gen.CreateDummyFiles(ctx, dir, 1)
		require.NoError(t, err, "creating dummy files")
		assert.True(t, strings.HasSuffix(created[0], ".log"), "got %s", created[0])
		assert.False(t, strings.Contains(filepath.Base(created[0]), ".."), "got %s", created[0])
	})

	t.Run("sequential_names_stay_unique_within_a_second", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{Extension: "txt", Naming: Sequential}

		created, err := gen.CreateDummyFiles(ctx, dir, 5)
		require.NoError(t, err, "creating dummy files")
		assert.Len(t, created, 5)

		seen := map[string]bool{}
		for _, path := range created {
			assert.False(t, seen[path], "duplicate path %s", path)
			seen[path] = true
		}
	})

	t.Run("negative_count_fails", func(t *testing.T) {
		gen := &Generator{}
		_, err := gen.CreateDummyFiles(ctx, t.TempDir(), -1)
		require.Error(t, err)
	})
}

func TestDeleteEmptyFiles(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("removes_only_zero_byte_files", func(t *testing.T) {
		dir := t.TempDir()
		empty := filepath.Join(dir, "empty.txt")
		full := filepath.Join(dir, "full.txt")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))
		require.NoError(t, os.WriteFile(full, []byte("data"), 0o644))

		deleted, err := DeleteEmptyFiles(ctx, dir, false)
		require.NoError(t, err, "deleting")
		assert.Equal(t, 1, deleted)
		assert.NoFileExists(t, empty)
		assert.FileExists(t, full)
	})

	t.Run("recursive_reaches_subfolders", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		nested := filepath.Join(sub, "empty.txt")
		require.NoError(t, os.WriteFile(nested, nil, 0o644))

		deleted, err := DeleteEmptyFiles(ctx, dir, true)
		require.NoError(t, err, "deleting")
		assert.Equal(t, 1, deleted)
		assert.NoFileExists(t, nested)
	})

	t.Run("non_recursive_ignores_subfolders", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		nested := filepath.Join(sub, "empty.txt")
		require.NoError(t, os.WriteFile(nested, nil, 0o644))

		deleted, err := DeleteEmptyFiles(ctx, dir, false)
		require.NoError(t, err, "deleting")
		assert.Zero(t, deleted)
		assert.FileExists(t, nested)
	})
}
