package oplog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
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

func newTestSink(t *testing.T, options ...Option) *Sink {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.log")
	zlog := zerolog.New(zerolog.TestWriter{T: t})
	sink, err := New(path, zlog, append([]Option{WithClock(testClock)}, options...)...)
	require.NoError(t, err, "creating sink")
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestRecord(t *testing.T) {
	t.Run("appends_timestamped_line", func(t *testing.T) {
		sink := newTestSink(t)

		require.NoError(t, sink.Record(Info, "text added to start of %s", "a.txt"))

		content, err := os.ReadFile(sink.Path())
		require.NoError(t, err, "reading log file")
		assert.Equal(t, "2025-03-14 15:09:26 - INFO - text added to start of a.txt\n", string(content))
	})

	t.Run("level_names_match_file_format", func(t *testing.T) {
		sink := newTestSink(t)

		require.NoError(t, sink.Record(Warn, "w"))
		require.NoError(t, sink.Record(Error, "e"))

		lines, err := sink.Tail(0)
		require.NoError(t, err, "tailing")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], " - WARNING - w")
		assert.Contains(t, lines[1], " - ERROR - e")
	})

	t.Run("mirrors_to_console", func(t *testing.T) {
		var console bytes.Buffer
		sink := newTestSink(t, WithConsole(&console))

		require.NoError(t, sink.Record(Info, "hello"))
		assert.Contains(t, console.String(), "hello")
	})

	t.Run("concurrent_records_all_land", func(t *testing.T) {
		sink := newTestSink(t)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, sink.Record(Info, "concurrent record"))
			}()
		}
		wg.Wait()

		lines, err := sink.Tail(0)
		require.NoError(t, err, "tailing")
		assert.Len(t, lines, 20)
	})
}

func TestTail(t *testing.T) {
	t.Run("empty_log_yields_nothing", func(t *testing.T) {
		sink := newTestSink(t)
		lines, err := sink.Tail(10)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("limits_to_last_n", func(t *testing.T) {
		sink := newTestSink(t)
		for i := 0; i < 5; i++ {
			require.NoError(t, sink.Record(Info, "record %d", i))
		}

		lines, err := sink.Tail(2)
		require.NoError(t, err, "tailing")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasSuffix(lines[0], "record 3"))
		assert.True(t, strings.HasSuffix(lines[1], "record 4"))
	})
}

func TestClear(t *testing.T) {
	t.Run("truncates_and_reopens", func(t *testing.T) {
		sink := newTestSink(t)
		require.NoError(t, sink.Record(Info, "before clear"))

		require.NoError(t, sink.Clear())

		lines, err := sink.Tail(0)
		require.NoError(t, err, "tailing after clear")
		assert.Empty(t, lines)

		// The sink must keep accepting records after a clear.
		require.NoError(t, sink.Record(Info, "after clear"))
		lines, err = sink.Tail(0)
		require.NoError(t, err, "tailing after new record")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "after clear")
	})
}

func TestClose(t *testing.T) {
	t.Run("record_after_close_fails", func(t *testing.T) {
		sink := newTestSink(t)
		require.NoError(t, sink.Close())
		require.Error(t, sink.Record(Info, "too late"))
	})

	t.Run("double_close_is_harmless", func(t *testing.T) {
		sink := newTestSink(t)
		require.NoError(t, sink.Close())
		require.NoError(t, sink.Close())
	})
}
