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

package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Candidate is a file selected by a walk
type Candidate struct {
	Path string // Absolute path to the file
	Size int64  // Size in bytes
	Ext  string // Extension including the leading dot, lowercased
}

// 🔍 Filter selects which files a walk yields
type Filter struct {
	// Extensions limits the walk to files with one of these extensions.
	// Entries may be given with or without the leading dot; matching is
	// case-insensitive. Empty means all files.
	Extensions []string

	// MaxSize rejects files larger than this many bytes. Zero means no limit.
	MaxSize int64

	// Recursive descends into subdirectories when true.
	Recursive bool

	// IgnorePatterns are doublestar globs matched against the slash-form
	// path relative to the walk root.
	IgnorePatterns []string
}

// normalizeExt returns the extension in canonical ".ext" lowercase form.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// 🔍 Matches reports whether a file with the given relative path, extension
// and size passes the filter.
func (f Filter) Matches(relPath string, ext string, size int64) bool {
	if len(f.Extensions) > 0 {
		found := false
		lower := strings.ToLower(ext)
		for _, want := range f.Extensions {
			if normalizeExt(want) == lower {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MaxSize > 0 && size > f.MaxSize {
		return false
	}

	for _, pattern := range f.IgnorePatterns {
		if matched, err := doublestar.Match(pattern, filepath.ToSlash(relPath)); err == nil && matched {
			return false
		}
	}

	return true
}

// 🚶 Walk enumerates files under root that pass the filter. Per-file errors
// (permission denied, vanished files) are logged and skipped; the walk only
// fails outright when the root itself cannot be read.
func Walk(ctx context.Context, root string, filter Filter) ([]Candidate, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(root); err != nil {
		return nil, errors.Errorf("reading walk root: %w", err)
	}

	var candidates []Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !filter.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping file without stat info")
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !filter.Matches(relPath, ext, info.Size()) {
			return nil
		}

		candidates = append(candidates, Candidate{
			Path: path,
			Size: info.Size(),
			Ext:  ext,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	logger.Debug().Int("count", len(candidates)).Str("root", root).Msg("walk complete")
	return candidates, nil
}
