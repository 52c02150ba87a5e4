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
	"github.com/cons0leweb/fsutils/pkg/walker"
)

// NewInjectCmd creates the inject command
func NewInjectCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder     string
		text       string
		position   string
		extensions []string
		maxSizeMB  int64
		recursive  bool
		backup     bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Insert text into many files at once",
		Long: `Inject inserts a literal string into every matching file under a folder.
The text can go at the start, the end, or a uniformly random line of each
file. With --backup each original is copied aside first so the batch can be
undone with "fsutils restore".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" || text == "" {
				return errors.Errorf("--folder and --text are required")
			}

			pos, err := inject.ParsePosition(position)
			if err != nil {
				return err
			}

			cfg := rootOpts.Config
			if maxSizeMB == 0 {
				maxSizeMB = cfg.MaxFileSizeMB
			}
			if len(extensions) == 0 {
				extensions = cfg.DefaultExtensions
			}
			if workers == 0 {
				workers = cfg.Workers
			}

			filter := walker.Filter{
				Extensions: extensions,
				MaxSize:    maxSizeMB * 1024 * 1024,
				Recursive:  recursive,
			}
			candidates, err := walker.Walk(ctx, folder, filter)
			if err != nil {
				return errors.Errorf("listing files: %w", err)
			}
			if len(candidates) == 0 {
				pterm.Info.Println("no matching files")
				return nil
			}

			inj := &inject.Injector{
				Text:         text,
				Position:     pos,
				Backup:       backup,
				BackupSuffix: cfg.BackupSuffix,
			}

			bar, _ := pterm.DefaultProgressbar.WithTotal(len(candidates)).WithTitle("injecting").Start()
			pool := runner.NewPool(ctx, workers)
			for _, c := range candidates {
				path := c.Path
				pool.Submit(func(ctx context.Context) error {
					defer bar.Increment()
					if _, err := inj.Apply(ctx, path); err != nil {
						rootOpts.Sink.Record(oplog.Error, "insert failed for %s: %v", path, err)
						pterm.Error.Printfln("%s: %v", path, err)
						return err
					}
					rootOpts.Sink.Record(oplog.Info, "text added to %s of %s", pos, path)
					return nil
				})
			}
			progress, err := pool.Wait()
			bar.Stop()
			if err != nil {
				return errors.Errorf("running inject batch: %w", err)
			}

			cfg.AddRecentFolder(folder)
			pterm.Success.Printfln("processed %d of %d files (%d errors)",
				progress.Processed, progress.Total, progress.Errors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to process")
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to insert")
	cmd.Flags().StringVarP(&position, "position", "p", "start", "insert position: start, end or random")
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "extensions to match (default from config)")
	cmd.Flags().Int64Var(&maxSizeMB, "max-size", 0, "max file size in MB (default from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subfolders")
	cmd.Flags().BoolVarP(&backup, "backup", "b", true, "create backups before editing")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker count, 1 means sequential (default from config)")

	return cmd
}
