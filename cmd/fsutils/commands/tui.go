package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/tui"
)

// NewTuiCmd creates the tui command
func NewTuiCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		Long: `Tui starts the interactive five-panel interface: text processing, file
operations, batch rename, checksum and log viewer.

Navigation:
  Tab / Shift+Tab   switch panel
  Up / Down         move between fields
  Enter             run the panel's action
  Esc / Ctrl+C      quit

Each panel lists its own shortcuts in the footer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := tui.NewModel(cmd.Context(), rootOpts.Config, rootOpts.Sink)

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return errors.Errorf("running interface: %w", err)
			}
			return nil
		},
	}

	return cmd
}
