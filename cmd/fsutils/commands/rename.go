package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/oplog"
	"github.com/cons0leweb/fsutils/pkg/renamer"
	"github.com/cons0leweb/fsutils/pkg/walker"
)

// NewRenameCmd creates the rename command
func NewRenameCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder     string
		template   string
		extensions []string
		recursive  bool
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Batch rename files from a template",
		Long: `Rename computes a new name for every matching file from a template and
renames them in place. Placeholders: {n} original name, {d} date, {t} time,
{r} random 4-character token. Extensions are preserved. A plan whose target
name already exists is skipped rather than overwriting.

Use --preview to print the plan without renaming anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" || template == "" {
				return errors.Errorf("--folder and --template are required")
			}

			cfg := rootOpts.Config
			if len(extensions) == 0 {
				extensions = cfg.DefaultExtensions
			}

			r := &renamer.Renamer{Template: template}
			plans, err := r.Plan(ctx, folder, walker.Filter{Extensions: extensions, Recursive: recursive})
			if err != nil {
				return errors.Errorf("planning renames: %w", err)
			}
			if len(plans) == 0 {
				pterm.Info.Println("no files to rename")
				return nil
			}

			if preview {
				for _, p := range plans {
					pterm.Info.Printfln("%s -> %s", p.OldPath, p.NewPath)
				}
				return nil
			}

			applied := renamer.Apply(ctx, plans)
			rootOpts.Sink.Record(oplog.Info, "renamed %d files in %s", applied, folder)
			cfg.AddRecentFolder(folder)
			pterm.Success.Printfln("renamed %d of %d files", applied, len(plans))
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to rename in")
	cmd.Flags().StringVarP(&template, "template", "t", "{n}_{d}_{r}", "name template")
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "extensions to match (default from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subfolders")
	cmd.Flags().BoolVarP(&preview, "preview", "n", false, "print the plan without renaming")

	return cmd
}
