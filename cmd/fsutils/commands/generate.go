package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/generate"
	"github.com/cons0leweb/fsutils/pkg/oplog"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder    string
		count     int
		extension string
		naming    string
		content   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create placeholder files for testing",
		Long: `Generate creates a number of dummy files in a folder, either with random
8-letter names or sequential timestamped names. Existing files are never
overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" {
				return errors.Errorf("--folder is required")
			}
			if count < 1 {
				return errors.Errorf("--count must be at least 1")
			}

			scheme, err := generate.ParseNaming(naming)
			if err != nil {
				return err
			}

			gen := &generate.Generator{
				Extension: extension,
				Naming:    scheme,
				Content:   content,
			}
			created, err := gen.CreateDummyFiles(ctx, folder, count)
			if err != nil {
				rootOpts.Sink.Record(oplog.Error, "dummy file generation failed: %v", err)
				return errors.Errorf("creating dummy files: %w", err)
			}

			rootOpts.Sink.Record(oplog.Info, "created %d dummy files in %s", len(created), folder)
			rootOpts.Config.AddRecentFolder(folder)
			pterm.Success.Printfln("created %d dummy files", len(created))
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "target folder")
	cmd.Flags().IntVarP(&count, "count", "c", 10, "number of files to create")
	cmd.Flags().StringVarP(&extension, "extension", "e", "txt", "extension for generated files")
	cmd.Flags().StringVarP(&naming, "naming", "n", "random", "naming scheme: random or sequential")
	cmd.Flags().StringVar(&content, "content", "", "content to write into each file (empty files by default)")

	return cmd
}
