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

package renamer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/pkg/walker"
)

// Template placeholders:
//
//	{n}  original file stem
//	{d}  current date, 20060102
//	{t}  current time, 150405
//	{r}  random 4-character alphanumeric token
const (
	placeholderName   = "{n}"
	placeholderDate   = "{d}"
	placeholderTime   = "{t}"
	placeholderRandom = "{r}"

	dateLayout = "20060102"
	timeLayout = "150405"
)

// 📄 Rename is one planned old-path to new-path transition
type Rename struct {
	OldPath string
	NewPath string
}

// 🏭 Renamer expands a template into new file names
type Renamer struct {
	// Template is the name pattern, e.g. "{n}_{d}_{r}".
	Template string

	// Clock supplies the {d} and {t} values. Defaults to the real time.
	Clock Clock

	// Tokens supplies the {r} value. Defaults to random alphanumerics.
	Tokens TokenSource
}

// 🔍 Expand computes the new file name for one original name. The extension
// is preserved; the template applies to the stem only.
func (r *Renamer) Expand(filename string) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	now := r.clock().Now()

	name := r.Template
	name = strings.ReplaceAll(name, placeholderName, stem)
	name = strings.ReplaceAll(name, placeholderDate, now.Format(dateLayout))
	name = strings.ReplaceAll(name, placeholderTime, now.Format(timeLayout))
	for strings.Contains(name, placeholderRandom) {
		name = strings.Replace(name, placeholderRandom, r.tokens().Token(tokenLength), 1)
	}

	return name + ext
}

// 📋 Plan walks root with the filter and computes the rename for each match
// without touching disk. Plans whose new name equals the old one are skipped.
func (r *Renamer) Plan(ctx context.Context, root string, filter walker.Filter) ([]Rename, error) {
	if strings.TrimSpace(r.Template) == "" {
		return nil, errors.Errorf("rename template is empty")
	}

	candidates, err := walker.Walk(ctx, root, filter)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}

	var plans []Rename
	for _, c := range candidates {
		newName := r.Expand(filepath.Base(c.Path))
		newPath := filepath.Join(filepath.Dir(c.Path), newName)
		if newPath == c.Path {
			continue
		}
		plans = append(plans, Rename{OldPath: c.Path, NewPath: newPath})
	}

	return plans, nil
}

// 🏃 Apply executes the plans with one rename syscall each. A plan whose
// target already exists is skipped and logged rather than clobbering the
// existing file; other per-file failures are likewise logged and skipped.
// Returns the number of files actually renamed.
func Apply(ctx context.Context, plans []Rename) int {
	logger := zerolog.Ctx(ctx)

	renamed := 0
	for _, plan := range plans {
		if _, err := os.Lstat(plan.NewPath); err == nil {
			logger.Warn().
				Str("old", plan.OldPath).
				Str("new", plan.NewPath).
				Msg("rename target already exists, skipping")
			continue
		}
		if err := os.Rename(plan.OldPath, plan.NewPath); err != nil {
			logger.Warn().Err(err).Str("old", plan.OldPath).Msg("rename failed, skipping")
			continue
		}
		logger.Info().Str("old", plan.OldPath).Str("new", plan.NewPath).Msg("renamed")
		renamed++
	}

	return renamed
}

func (r *Renamer) clock() Clock {
	if r.Clock != nil {
		return r.Clock
	}
	return RealClock{}
}

func (r *Renamer) tokens() TokenSource {
	if r.Tokens != nil {
		return r.Tokens
	}
	return RandomTokens{}
}
