package inject

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

var testClock = fixedClock{at: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)}

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	return string(content)
}

func TestParsePosition(t *testing.T) {
	t.Run("known_names", func(t *testing.T) {
		for name, want := range map[string]Position{
			"start":       Start,
			"END":         End,
			"random":      RandomLine,
			"random-line": RandomLine,
		} {
			got, err := ParsePosition(name)
			require.NoError(t, err, "parsing %q", name)
			assert.Equal(t, want, got)
		}
	})

	t.Run("unknown_name_fails", func(t *testing.T) {
		_, err := ParsePosition("middle")
		require.Error(t, err)
	})
}

func TestInjectorApply(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("start_prepends_text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path, "line1\nline2")

		inj := &Injector{Text: "header", Position: Start}
		_, err := inj.Apply(ctx, path)
		require.NoError(t, err, "applying")

		assert.Equal(t, "header\nline1\nline2", readFile(t, path))
	})

	t.Run("end_appends_text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path, "line1\nline2")

		inj := &Injector{Text: "footer", Position: End}
		_, err := inj.Apply(ctx, path)
		require.NoError(t, err, "applying")

		assert.Equal(t, "line1\nline2\nfooter", readFile(t, path))
	})

	t.Run("random_line_inserts_at_picked_index", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path, "a\nb\nc")

		inj := &Injector{
			Text:     "x",
			Position: RandomLine,
			Intn:     func(n int) int { return 1 },
		}
		res, err := inj.Apply(ctx, path)
		require.NoError(t, err, "applying")

		assert.Equal(t, 1, res.Line)
		assert.Equal(t, "a\nx\nb\nc", readFile(t, path))
	})

	t.Run("random_line_covers_both_ends", func(t *testing.T) {
		dir := t.TempDir()

		first := filepath.Join(dir, "first.txt")
		writeFile(t, first, "a\nb")
		inj := &Injector{Text: "x", Position: RandomLine, Intn: func(n int) int { return 0 }}
		_, err := inj.Apply(ctx, first)
		require.NoError(t, err, "applying at index 0")
		assert.Equal(t, "x\na\nb", readFile(t, first))

		last := filepath.Join(dir, "last.txt")
		writeFile(t, last, "a\nb")
		inj = &Injector{Text: "x", Position: RandomLine, Intn: func(n int) int { return n - 1 }}
		_, err = inj.Apply(ctx, last)
		require.NoError(t, err, "applying at last index")
		assert.Equal(t, "a\nb\nx", readFile(t, last))
	})

	t.Run("backup_preserves_original_bytes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		original := "original content\nwith two lines"
		writeFile(t, path, original)

		inj := &Injector{Text: "injected", Position: Start, Backup: true, Clock: testClock}
		res, err := inj.Apply(ctx, path)
		require.NoError(t, err, "applying")

		require.NotEmpty(t, res.BackupPath, "backup path should be reported")
		assert.Equal(t, path+"_20250314_150926"+DefaultBackupSuffix, res.BackupPath)
		assert.Equal(t, original, readFile(t, res.BackupPath), "backup must hold the exact original bytes")
		assert.Equal(t, "injected\n"+original, readFile(t, path))
	})

	t.Run("missing_file_fails", func(t *testing.T) {
		inj := &Injector{Text: "x", Position: Start}
		_, err := inj.Apply(ctx, filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
	})
}

func TestRestore(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("restore_round_trips_content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		original := "pre-operation bytes"
		writeFile(t, path, original)

		inj := &Injector{Text: "mutation", Position: End, Backup: true, Clock: testClock}
		res, err := inj.Apply(ctx, path)
		require.NoError(t, err, "applying")
		require.NotEqual(t, original, readFile(t, path), "file should be mutated")

		restored, err := Restore(ctx, res.BackupPath, "")
		require.NoError(t, err, "restoring")
		assert.Equal(t, path, restored)
		assert.Equal(t, original, readFile(t, path), "restore must yield byte-identical content")
	})

	t.Run("rejects_non_backup_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path, "x")

		_, err := Restore(ctx, path, "")
		require.Error(t, err, "restoring a non-backup should fail")
	})
}

func TestOriginalPath(t *testing.T) {
	t.Run("strips_timestamp_and_suffix", func(t *testing.T) {
		got, err := OriginalPath("/tmp/doc.txt_20250314_150926.bak.cu", DefaultBackupSuffix)
		require.NoError(t, err, "recovering original path")
		assert.Equal(t, "/tmp/doc.txt", got)
	})

	t.Run("rejects_wrong_suffix", func(t *testing.T) {
		_, err := OriginalPath("/tmp/doc.txt", DefaultBackupSuffix)
		require.Error(t, err)
	})

	t.Run("rejects_malformed_timestamp", func(t *testing.T) {
		_, err := OriginalPath("/tmp/doc.txt_notadatetime.bak.cu", DefaultBackupSuffix)
		require.Error(t, err)
	})
}

func TestFindBackups(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("finds_only_suffixed_files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.txt"), "x")
		backup := filepath.Join(dir, "a.txt_20250314_150926"+DefaultBackupSuffix)
		writeFile(t, backup, "x")

		got, err := FindBackups(ctx, dir, "", false)
		require.NoError(t, err, "finding backups")
		assert.Equal(t, []string{backup}, got)
	})
}
