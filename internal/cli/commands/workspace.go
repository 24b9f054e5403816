package commands

import (
	"fmt"

	"kevlar/internal/cli"
	"kevlar/internal/config"

	"github.com/spf13/cobra"
)

// WorkspaceCommand handles the workspace command
type WorkspaceCommand struct {
	flags       *cli.Flags
	provisioner config.Provisioner
}

// NewWorkspaceCommand creates a new WorkspaceCommand
func NewWorkspaceCommand(flags *cli.Flags, provisioner config.Provisioner) *WorkspaceCommand {
	return &WorkspaceCommand{
		flags:       flags,
		provisioner: provisioner,
	}
}

// Execute runs the command
func (wc *WorkspaceCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(wc.flags.Name, wc.flags.Source(), wc.provisioner)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Path)
	return nil
}
