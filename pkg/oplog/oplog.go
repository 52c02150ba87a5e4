// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oplog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// recordTimeLayout matches the classic "2006-01-02 15:04:05" log line stamp.
const recordTimeLayout = "2006-01-02 15:04:05"

// 🏷️ Level classifies an operation record
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// String returns the uppercase level name as written to the log file.
func (l Level) String() string {
	switch l {
	case Warn:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ⏰ Clock abstracts time retrieval so record stamps are deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// 📝 Sink appends timestamped operation records to a log file and mirrors
// them to a console writer and to zerolog. Safe for concurrent use: batch
// workers log through a shared sink.
type Sink struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	console io.Writer
	zlog    zerolog.Logger
	clock   Clock
}

// Option configures a Sink.
type Option func(*Sink)

// WithConsole mirrors records to the given writer with colored level
// symbols.
func WithConsole(w io.Writer) Option {
	return func(s *Sink) { s.console = w }
}

// WithClock overrides the record timestamp source.
func WithClock(c Clock) Option {
	return func(s *Sink) { s.clock = c }
}

// 🏭 New opens (or creates) the append-only log file at path.
func New(path string, zlog zerolog.Logger, options ...Option) (*Sink, error) {
	s := &Sink{
		path:  path,
		zlog:  zlog,
		clock: RealClock{},
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) open() error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Errorf("opening log file: %w", err)
	}
	s.file = f
	return nil
}

// Path returns the log file location.
func (s *Sink) Path() string {
	return s.path
}

// 📝 Record appends one timestamped record and mirrors it to the console
// and to zerolog.
func (s *Sink) Record(level Level, format string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s - %s - %s\n", s.clock.Now().Format(recordTimeLayout), level, msg)

	if s.file == nil {
		return errors.Errorf("log sink is closed")
	}
	if _, err := s.file.WriteString(line); err != nil {
		return errors.Errorf("appending log record: %w", err)
	}

	if s.console != nil {
		fmt.Fprintln(s.console, s.consoleLine(level, msg))
	}

	switch level {
	case Error:
		s.zlog.Error().Msg(msg)
	case Warn:
		s.zlog.Warn().Msg(msg)
	default:
		s.zlog.Info().Msg(msg)
	}

	return nil
}

// consoleLine renders the colored console mirror of a record.
func (s *Sink) consoleLine(level Level, msg string) string {
	var symbol string
	switch level {
	case Error:
		symbol = color.New(color.FgRed).Sprint("✗")
	case Warn:
		symbol = color.New(color.FgYellow).Sprint("!")
	default:
		symbol = color.New(color.FgGreen).Sprint("✓")
	}
	return fmt.Sprintf("%s %s", symbol, msg)
}

// 📜 Tail returns the last n records from the log file, oldest first. With
// n <= 0 the whole file is returned.
func (s *Sink) Tail(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Errorf("reading log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// 🧹 Clear truncates the log file and reopens it for appending.
func (s *Sink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return errors.Errorf("closing log file: %w", err)
		}
		s.file = nil
	}
	if err := os.Truncate(s.path, 0); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("truncating log file: %w", err)
	}
	return s.open()
}

// Close flushes and closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return errors.Errorf("closing log file: %w", err)
	}
	return nil
}
