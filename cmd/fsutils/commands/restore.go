package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/inject"
	"github.com/cons0leweb/fsutils/pkg/oplog"
	"github.com/cons0leweb/fsutils/pkg/runner"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder    string
		recursive bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore files from their backups",
		Long: `Restore finds every backup-suffixed file under a folder and copies its
bytes back over the original, undoing a previous inject run. The backup
files themselves are left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" {
				return errors.Errorf("--folder is required")
			}

			cfg := rootOpts.Config
			if workers == 0 {
				workers = cfg.Workers
			}

			backups, err := inject.FindBackups(ctx, folder, cfg.BackupSuffix, recursive)
			if err != nil {
				return errors.Errorf("finding backups: %w", err)
			}
			if len(backups) == 0 {
				pterm.Info.Println("no backups found")
				return nil
			}

			bar, _ := pterm.DefaultProgressbar.WithTotal(len(backups)).WithTitle("restoring").Start()
			pool := runner.NewPool(ctx, workers)
			for _, b := range backups {
				backupPath := b
				pool.Submit(func(ctx context.Context) error {
					defer bar.Increment()
					restored, err := inject.Restore(ctx, backupPath, cfg.BackupSuffix)
					if err != nil {
						rootOpts.Sink.Record(oplog.Error, "restore failed for %s: %v", backupPath, err)
						pterm.Error.Printfln("%s: %v", backupPath, err)
						return err
					}
					rootOpts.Sink.Record(oplog.Info, "restored %s from backup", restored)
					return nil
				})
			}
			progress, err := pool.Wait()
			bar.Stop()
			if err != nil {
				return errors.Errorf("running restore batch: %w", err)
			}

			pterm.Success.Printfln("restored %d of %d backups (%d errors)",
				progress.Processed-progress.Errors, progress.Total, progress.Errors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to scan for backups")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subfolders")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker count (default from config)")

	return cmd
}
