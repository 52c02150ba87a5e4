package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/checksum"
	"github.com/cons0leweb/fsutils/pkg/oplog"
	"github.com/cons0leweb/fsutils/pkg/walker"
)

// NewChecksumCmd creates the checksum command
func NewChecksumCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		folder     string
		algorithm  string
		recursive  bool
		duplicates bool
	)

	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Compute file digests and find duplicates",
		Long: `Checksum computes a digest for every file under a folder using one of
md5, sha1, sha256 or sha512. With --duplicates, files sharing an identical
digest are reported as duplicate sets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if folder == "" {
				return errors.Errorf("--folder is required")
			}

			algo, err := checksum.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			entries, err := checksum.Report(ctx, folder, algo, walker.Filter{Recursive: recursive})
			if err != nil {
				return errors.Errorf("computing checksums: %w", err)
			}

			for _, e := range entries {
				if e.Err != nil {
					pterm.Error.Printfln("%s: %v", e.Path, e.Err)
					continue
				}
				pterm.Info.Printfln("%s: %s", e.Path, e.Digest)
			}

			if duplicates {
				groups := checksum.Duplicates(entries)
				if len(groups) == 0 {
					pterm.Success.Println("no duplicate files found")
				}
				for _, group := range groups {
					for _, e := range group[1:] {
						pterm.Warning.Printfln("%s is duplicate of %s", e.Path, group[0].Path)
					}
				}
			}

			rootOpts.Sink.Record(oplog.Info, "computed %s checksums for %d files in %s",
				algo, len(entries), folder)
			rootOpts.Config.AddRecentFolder(folder)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to hash")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "md5", "digest algorithm: md5, sha1, sha256 or sha512")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subfolders")
	cmd.Flags().BoolVarP(&duplicates, "duplicates", "D", false, "report files sharing a digest")

	return cmd
}
