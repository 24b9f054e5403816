package commands

import (
	"kevlar/internal/cli"
	"kevlar/internal/storage"
	"kevlar/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ViewCommand handles the view command
type ViewCommand struct {
	flags   *cli.Flags
	storage storage.Storage
	viewer  ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(flags *cli.Flags, st storage.Storage, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		flags:   flags,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := vc.storage.Load(args[0])
	if err != nil {
		return err
	}
	if len(summary.History) == 0 {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "No events recorded for %s\n", summary.Name)
		return nil
	}
	return vc.viewer.View(summary)
}
