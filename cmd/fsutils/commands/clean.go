package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/generate"
	"github.com/cons0leweb/fsutils/pkg/oplog"
)

// NewCleanCmd creates the clean command
func NewCleanCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder    string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete empty files",
		Long: `Clean removes zero-byte files under a folder. Files that cannot be
deleted are logged and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" {
				return errors.Errorf("--folder is required")
			}

			deleted, err := generate.DeleteEmptyFiles(ctx, folder, recursive)
			if err != nil {
				return errors.Errorf("deleting empty files: %w", err)
			}

			rootOpts.Sink.Record(oplog.Info, "deleted %d empty files in %s", deleted, folder)
			pterm.Success.Printfln("deleted %d empty files", deleted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to clean")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subfolders")

	return cmd
}
