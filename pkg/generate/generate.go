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

package generate

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/pkg/walker"
)

// 🏷️ Naming selects how dummy file names are derived
type Naming int

const (
	Random Naming = iota
	Sequential
)

// ParseNaming maps a name like "random" to its Naming.
func ParseNaming(name string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return Random, nil
	case "sequential":
		return Sequential, nil
	default:
		return 0, errors.Errorf("unsupported naming scheme: %q", name)
	}
}

// ⏰ Clock abstracts time retrieval for sequential dummy names.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

const randomNameLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomStem returns 8 ASCII letters.
func randomStem() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = randomNameLetters[rand.Intn(len(randomNameLetters))]
	}
	return string(b)
}

// 🏭 Generator creates placeholder files for testing
type Generator struct {
	// Extension for generated files, with or without the leading dot.
	Extension string

	// Naming picks random or sequential file names.
	Naming Naming

	// Content is written into each file; empty files when unset.
	Content string

	// Clock stamps sequential names. Defaults to the real time.
	Clock Clock
}

// 🏃 CreateDummyFiles creates exactly count new files under folder, creating
// the folder when missing. An existing name is never overwritten: files are
// opened O_EXCL and random-name collisions are retried with a fresh name.
func (g *Generator) CreateDummyFiles(ctx context.Context, folder string, count int) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if count < 0 {
		return nil, errors.Errorf("negative file count: %d", count)
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, errors.Errorf("creating folder: %w", err)
	}

	ext := strings.TrimPrefix(strings.TrimSpace(g.Extension), ".")
	if ext == "" {
		ext = "txt"
	}

	created := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path, err := g.createOne(folder, ext, i)
		if err != nil {
			return created, errors.Errorf("creating dummy file %d of %d: %w", i+1, count, err)
		}
		logger.Info().Str("path", path).Msg("dummy file created")
		created = append(created, path)
	}

	return created, nil
}

// createOne writes a single dummy file, retrying random names on collision.
func (g *Generator) createOne(folder string, ext string, index int) (string, error) {
	const maxAttempts = 100

	naming := g.Naming
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var stem string
		if naming == Sequential {
			stem = fmt.Sprintf("dummy_%s_%d", g.clock().Now().Format("20060102_150405"), index)
		} else {
			stem = randomStem()
		}

		path := filepath.Join(folder, stem+"."+ext)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			// Same second, same index: fall back to a random stem.
			naming = Random
			continue
		}
		if err != nil {
			return "", errors.Errorf("opening %s: %w", path, err)
		}

		if g.Content != "" {
			if _, err := f.WriteString(g.Content); err != nil {
				f.Close()
				return "", errors.Errorf("writing %s: %w", path, err)
			}
		}
		if err := f.Close(); err != nil {
			return "", errors.Errorf("closing %s: %w", path, err)
		}
		return path, nil
	}

	return "", errors.Errorf("could not find a free file name in %s", folder)
}

func (g *Generator) clock() Clock {
	if g.Clock != nil {
		return g.Clock
	}
	return RealClock{}
}

// 🗑️ DeleteEmptyFiles removes zero-byte files under folder and returns how
// many were deleted. Per-file failures are logged and skipped.
func DeleteEmptyFiles(ctx context.Context, folder string, recursive bool) (int, error) {
	logger := zerolog.Ctx(ctx)

	candidates, err := walker.Walk(ctx, folder, walker.Filter{Recursive: recursive})
	if err != nil {
		return 0, errors.Errorf("listing files: %w", err)
	}

	deleted := 0
	for _, c := range candidates {
		if c.Size != 0 {
			continue
		}
		if err := os.Remove(c.Path); err != nil {
			logger.Warn().Err(err).Str("path", c.Path).Msg("could not delete empty file")
			continue
		}
		logger.Info().Str("path", c.Path).Msg("empty file deleted")
		deleted++
	}

	return deleted, nil
}
