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

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/pkg/checksum"
	"github.com/cons0leweb/fsutils/pkg/generate"
	"github.com/cons0leweb/fsutils/pkg/inject"
	"github.com/cons0leweb/fsutils/pkg/oplog"
	"github.com/cons0leweb/fsutils/pkg/renamer"
	"github.com/cons0leweb/fsutils/pkg/runner"
	"github.com/cons0leweb/fsutils/pkg/walker"
)

func splitExtensions(raw string) []string {
	var exts []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

// injectCmd runs the text-insertion batch over the worker pool.
func (m Model) injectCmd() tea.Cmd {
	folder := m.value(PanelText, textFieldFolder)
	text := m.inputs[PanelText][textFieldText].Value()
	exts := splitExtensions(m.value(PanelText, textFieldExtensions))
	maxSizeMB, _ := strconv.ParseInt(m.value(PanelText, textFieldMaxSize), 10, 64)
	position := m.positionValue()
	backup := m.backup
	recursive := m.recursive

	return func() tea.Msg {
		if folder == "" || text == "" {
			return batchDoneMsg{err: errors.New("folder and text are required")}
		}

		filter := walker.Filter{
			Extensions: exts,
			MaxSize:    maxSizeMB * 1024 * 1024,
			Recursive:  recursive,
		}
		candidates, err := walker.Walk(m.ctx, folder, filter)
		if err != nil {
			return batchDoneMsg{err: err}
		}

		inj := &inject.Injector{
			Text:         text,
			Position:     position,
			Backup:       backup,
			BackupSuffix: m.cfg.BackupSuffix,
		}

		pool := runner.NewPool(m.ctx, m.cfg.Workers)
		for _, c := range candidates {
			path := c.Path
			pool.Submit(func(ctx context.Context) error {
				if _, err := inj.Apply(ctx, path); err != nil {
					m.log.Record(oplog.Error, "insert failed for %s: %v", path, err)
					return err
				}
				m.log.Record(oplog.Info, "text added to %s of %s", position, path)
				return nil
			})
		}
		progress, err := pool.Wait()
		if err != nil {
			return batchDoneMsg{err: err}
		}
		return batchDoneMsg{
			summary:  fmt.Sprintf("inserted text at %s of %d files", position, progress.Processed-progress.Errors),
			progress: progress,
		}
	}
}

// restoreCmd restores every backup-suffixed file under the folder.
func (m Model) restoreCmd() tea.Cmd {
	folder := m.value(PanelText, textFieldFolder)
	recursive := m.recursive

	return func() tea.Msg {
		if folder == "" {
			return batchDoneMsg{err: errors.New("folder is required")}
		}

		backups, err := inject.FindBackups(m.ctx, folder, m.cfg.BackupSuffix, recursive)
		if err != nil {
			return batchDoneMsg{err: err}
		}

		pool := runner.NewPool(m.ctx, m.cfg.Workers)
		for _, b := range backups {
			backupPath := b
			pool.Submit(func(ctx context.Context) error {
				restored, err := inject.Restore(ctx, backupPath, m.cfg.BackupSuffix)
				if err != nil {
					m.log.Record(oplog.Error, "restore failed for %s: %v", backupPath, err)
					return err
				}
				m.log.Record(oplog.Info, "restored %s from backup", restored)
				return nil
			})
		}
		progress, err := pool.Wait()
		if err != nil {
			return batchDoneMsg{err: err}
		}
		return batchDoneMsg{
			summary:  fmt.Sprintf("restored %d files from backup", progress.Processed-progress.Errors),
			progress: progress,
		}
	}
}

// generateCmd creates the requested dummy files.
func (m Model) generateCmd() tea.Cmd {
	folder := m.value(PanelFiles, filesFieldFolder)
	countRaw := m.value(PanelFiles, filesFieldCount)
	ext := m.value(PanelFiles, filesFieldExtension)
	naming := generate.Naming(m.naming)

	return func() tea.Msg {
		if folder == "" {
			return batchDoneMsg{err: errors.New("folder is required")}
		}
		count, err := strconv.Atoi(countRaw)
		if err != nil || count < 1 {
			return batchDoneMsg{err: errors.Errorf("invalid file count: %q", countRaw)}
		}

		gen := &generate.Generator{Extension: ext, Naming: naming}
		created, err := gen.CreateDummyFiles(m.ctx, folder, count)
		if err != nil {
			m.log.Record(oplog.Error, "dummy file generation failed: %v", err)
			return batchDoneMsg{err: err}
		}

		m.log.Record(oplog.Info, "created %d dummy files in %s", len(created), folder)
		return batchDoneMsg{
			summary:  fmt.Sprintf("created %d dummy files", len(created)),
			progress: runner.Progress{Total: int64(count), Processed: int64(len(created))},
		}
	}
}

// deleteEmptyCmd removes zero-byte files under the folder.
func (m Model) deleteEmptyCmd() tea.Cmd {
	folder := m.value(PanelFiles, filesFieldFolder)
	recursive := m.recursive

	return func() tea.Msg {
		if folder == "" {
			return batchDoneMsg{err: errors.New("folder is required")}
		}

		deleted, err := generate.DeleteEmptyFiles(m.ctx, folder, recursive)
		if err != nil {
			m.log.Record(oplog.Error, "empty file cleanup failed: %v", err)
			return batchDoneMsg{err: err}
		}

		m.log.Record(oplog.Info, "deleted %d empty files in %s", deleted, folder)
		return batchDoneMsg{
			summary:  fmt.Sprintf("deleted %d empty files", deleted),
			progress: runner.Progress{Total: int64(deleted), Processed: int64(deleted)},
		}
	}
}

// renameCmd previews or executes the batch rename.
func (m Model) renameCmd(execute bool) tea.Cmd {
	folder := m.value(PanelRename, renameFieldFolder)
	template := m.value(PanelRename, renameFieldTemplate)
	exts := splitExtensions(m.value(PanelRename, renameFieldExtensions))
	recursive := m.recursive

	return func() tea.Msg {
		if folder == "" || template == "" {
			return renameDoneMsg{applied: -1, err: errors.New("folder and pattern are required")}
		}

		r := &renamer.Renamer{Template: template}
		plans, err := r.Plan(m.ctx, folder, walker.Filter{Extensions: exts, Recursive: recursive})
		if err != nil {
			return renameDoneMsg{applied: -1, err: err}
		}

		if !execute {
			preview := make([]string, 0, len(plans))
			for _, p := range plans {
				preview = append(preview, fmt.Sprintf("%s -> %s", p.OldPath, p.NewPath))
			}
			return renameDoneMsg{preview: preview, applied: -1}
		}

		applied := renamer.Apply(m.ctx, plans)
		m.log.Record(oplog.Info, "renamed %d files in %s", applied, folder)
		return renameDoneMsg{applied: applied}
	}
}

// checksumCmd computes digests and optionally duplicate groups.
func (m Model) checksumCmd() tea.Cmd {
	folder := m.value(PanelChecksum, checksumFieldFolder)
	algoName := algorithmNames[m.algorithm]
	wantDuplicates := m.duplicates
	recursive := m.recursive

	return func() tea.Msg {
		if folder == "" {
			return checksumDoneMsg{err: errors.New("folder is required")}
		}
		algo, err := checksum.ParseAlgorithm(algoName)
		if err != nil {
			return checksumDoneMsg{err: err}
		}

		entries, err := checksum.Report(m.ctx, folder, algo, walker.Filter{Recursive: recursive})
		if err != nil {
			return checksumDoneMsg{err: err}
		}

		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Err != nil {
				lines = append(lines, fmt.Sprintf("%s: ERROR - %v", e.Path, e.Err))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", e.Path, e.Digest))
		}

		var dupes []string
		if wantDuplicates {
			for _, group := range checksum.Duplicates(entries) {
				for _, e := range group[1:] {
					dupes = append(dupes, fmt.Sprintf("%s is duplicate of %s", e.Path, group[0].Path))
				}
			}
		}

		m.log.Record(oplog.Info, "computed %s checksums for %d files in %s", algoName, len(entries), folder)
		return checksumDoneMsg{lines: lines, duplicates: dupes}
	}
}

// tailLogCmd reads the newest operation records.
func (m Model) tailLogCmd() tea.Cmd {
	return func() tea.Msg {
		lines, err := m.log.Tail(500)
		return logTailMsg{lines: lines, err: err}
	}
}

// clearLogCmd truncates the operation log.
func (m Model) clearLogCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.log.Clear(); err != nil {
			return logTailMsg{err: err}
		}
		return logTailMsg{}
	}
}
