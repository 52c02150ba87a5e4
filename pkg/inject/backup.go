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
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/pkg/walker"
)

// DefaultBackupSuffix marks pre-mutation copies on disk.
const DefaultBackupSuffix = ".bak.cu"

// backupTimeLayout stamps backup file names.
const backupTimeLayout = "20060102_150405"

// ⏰ Clock abstracts time retrieval so backup names are deterministic in tests
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// 💾 CreateBackup copies the original bytes of path aside to
// "<path>_<timestamp><suffix>" and returns the backup path.
func CreateBackup(ctx context.Context, path string, suffix string, clock Clock) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading original: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("stating original: %w", err)
	}

	backupPath := path + "_" + clock.Now().Format(backupTimeLayout) + suffix
	if err := os.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
		return "", errors.Errorf("writing backup: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("backup", backupPath).Msg("backup created")
	return backupPath, nil
}

// 🔙 Restore copies a backup's bytes back over the original file and returns
// the restored path. The backup file itself is left in place.
func Restore(ctx context.Context, backupPath string, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	originalPath, err := OriginalPath(backupPath, suffix)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		return "", errors.Errorf("reading backup: %w", err)
	}

	// Preserve the original's mode when it still exists, else the backup's.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(originalPath); err == nil {
		mode = info.Mode().Perm()
	} else if info, err := os.Stat(backupPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(originalPath, content, mode); err != nil {
		return "", errors.Errorf("restoring original: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", originalPath).Str("backup", backupPath).Msg("restored from backup")
	return originalPath, nil
}

// 🔍 OriginalPath recovers the original file path from a backup path by
// stripping the suffix and the timestamp segment.
func OriginalPath(backupPath string, suffix string) (string, error) {
	if !strings.HasSuffix(backupPath, suffix) {
		return "", errors.Errorf("not a backup file: %s", backupPath)
	}

	stem := strings.TrimSuffix(backupPath, suffix)

	// Backup names end with "_20060102_150405" before the suffix.
	const stampLen = 1 + len(backupTimeLayout)
	if len(stem) <= stampLen {
		return "", errors.Errorf("malformed backup name: %s", backupPath)
	}
	stamp := stem[len(stem)-stampLen:]
	if stamp[0] != '_' {
		return "", errors.Errorf("malformed backup name: %s", backupPath)
	}
	if _, err := time.Parse(backupTimeLayout, stamp[1:]); err != nil {
		return "", errors.Errorf("malformed backup timestamp in %s: %w", backupPath, err)
	}

	return stem[:len(stem)-stampLen], nil
}

// 🔍 FindBackups walks root for backup-suffixed files.
func FindBackups(ctx context.Context, root string, suffix string, recursive bool) ([]string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	candidates, err := walker.Walk(ctx, root, walker.Filter{Recursive: recursive})
	if err != nil {
		return nil, errors.Errorf("listing backups: %w", err)
	}

	var backups []string
	for _, c := range candidates {
		if strings.HasSuffix(c.Path, suffix) {
			backups = append(backups, c.Path)
		}
	}
	return backups, nil
}
