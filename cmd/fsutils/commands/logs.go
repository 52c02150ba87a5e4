package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
)

// NewLogsCmd creates the logs command
func NewLogsCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		tail  int
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show or clear the operation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				if err := rootOpts.Sink.Clear(); err != nil {
					return errors.Errorf("clearing log: %w", err)
				}
				pterm.Success.Println("operation log cleared")
				return nil
			}

			lines, err := rootOpts.Sink.Tail(tail)
			if err != nil {
				return errors.Errorf("reading log: %w", err)
			}
			if len(lines) == 0 {
				pterm.Info.Println("operation log is empty")
				return nil
			}
			for _, line := range lines {
				pterm.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "t", 0, "show only the last N records (0 shows all)")
	cmd.Flags().BoolVar(&clear, "clear", false, "truncate the operation log")

	return cmd
}
