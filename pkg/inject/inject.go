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

package inject

import (
	"context"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📍 Position says where the text goes inside each file
type Position int

const (
	Start Position = iota
	End
	RandomLine
)

// String returns the lowercase position name.
func (p Position) String() string {
	switch p {
	case Start:
		return "start"
	case End:
		return "end"
	case RandomLine:
		return "random"
	default:
		return "unknown"
	}
}

// ParsePosition maps a name like "start" to its Position.
func ParsePosition(name string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start":
		return Start, nil
	case "end":
		return End, nil
	case "random", "random-line":
		return RandomLine, nil
	default:
		return 0, errors.Errorf("unsupported insert position: %q", name)
	}
}

// 📄 Result describes what happened to one file
type Result struct {
	Path       string // File that was modified
	BackupPath string // Backup copy, empty when backups were disabled
	Line       int    // Line index the text landed on (random position only)
}

// ✏️ Injector inserts a literal string into files in place
type Injector struct {
	// Text is the literal string to insert.
	Text string

	// Position selects start, end or a random line.
	Position Position

	// Backup copies the original bytes aside before mutating when true.
	Backup bool

	// BackupSuffix overrides the default backup suffix.
	BackupSuffix string

	// Clock stamps backup file names. Defaults to the real time.
	Clock Clock

	// Intn picks the random insertion line. Defaults to math/rand; tests
	// inject a fixed function.
	Intn func(n int) int
}

// 🏃 Apply mutates a single file in place, optionally writing a backup copy
// of the original bytes first. The file mode is preserved.
func (inj *Injector) Apply(ctx context.Context, path string) (Result, error) {
	logger := zerolog.Ctx(ctx)
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return res, errors.Errorf("stating file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return res, errors.Errorf("reading file: %w", err)
	}

	if inj.Backup {
		backupPath, err := CreateBackup(ctx, path, inj.backupSuffix(), inj.clock())
		if err != nil {
			return res, errors.Errorf("backing up before insert: %w", err)
		}
		res.BackupPath = backupPath
	}

	updated, line := inj.insert(string(content))
	res.Line = line

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return res, errors.Errorf("writing file: %w", err)
	}

	logger.Info().
		Str("path", path).
		Str("position", inj.Position.String()).
		Msg("text inserted")
	return res, nil
}

// insert returns the new content and, for the random position, the line
// index the text was inserted at (-1 otherwise).
func (inj *Injector) insert(content string) (string, int) {
	switch inj.Position {
	case End:
		return content + "\n" + inj.Text, -1
	case RandomLine:
		lines := strings.Split(content, "\n")
		pos := inj.intn(len(lines) + 1)
		lines = append(lines[:pos], append([]string{inj.Text}, lines[pos:]...)...)
		return strings.Join(lines, "\n"), pos
	default:
		return inj.Text + "\n" + content, -1
	}
}

func (inj *Injector) backupSuffix() string {
	if inj.BackupSuffix != "" {
		return inj.BackupSuffix
	}
	return DefaultBackupSuffix
}

func (inj *Injector) clock() Clock {
	if inj.Clock != nil {
		return inj.Clock
	}
	return RealClock{}
}

func (inj *Injector) intn(n int) int {
	if inj.Intn != nil {
		return inj.Intn(n)
	}
	return rand.Intn(n)
}
