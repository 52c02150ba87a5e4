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
	"github.com/cons0leweb/fsutils/pkg/runner"
)

// batchDoneMsg reports a finished inject/restore/clean/generate batch.
type batchDoneMsg struct {
	summary  string
	progress runner.Progress
	err      error
}

// renameDoneMsg carries a rename preview or execution result.
type renameDoneMsg struct {
	preview []string
	applied int
	err     error
}

// checksumDoneMsg carries digest lines and duplicate groups.
type checksumDoneMsg struct {
	lines      []string
	duplicates []string
	err        error
}

// logTailMsg carries freshly read operation log lines.
type logTailMsg struct {
	lines []string
	err   error
}
