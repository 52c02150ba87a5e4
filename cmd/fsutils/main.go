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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cons0leweb/fsutils/cmd/fsutils/commands"
	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
)

func main() {
	ctx := zerolog.New(os.Stderr).With().Timestamp().Logger().WithContext(context.Background())

	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "fsutils",
		Short: "Bulk file manipulation toolkit",
		Long: `fsutils batch-edits many files at once: insert text, rename by
pattern, compute checksums, find duplicates, generate placeholder files and
clean up empty ones. Every mutating operation records to an append-only
operation log, and backups can be taken before edits.

Run without a subcommand or with "tui" for the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRoot(cmd, rootOpts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardownRoot(cmd.Context(), rootOpts)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewInjectCmd(rootOpts),
		commands.NewRestoreCmd(rootOpts),
		commands.NewRenameCmd(rootOpts),
		commands.NewChecksumCmd(rootOpts),
		commands.NewGenerateCmd(rootOpts),
		commands.NewCleanCmd(rootOpts),
		commands.NewLogsCmd(rootOpts),
		commands.NewTuiCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
