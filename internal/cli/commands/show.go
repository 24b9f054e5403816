package commands

import (
	"fmt"

	"kevlar/internal/cli"
	"kevlar/internal/storage"
	"kevlar/internal/ui"

	"github.com/spf13/cobra"
)

// ShowCommand handles the show command
type ShowCommand struct {
	flags   *cli.Flags
	storage storage.Storage
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(flags *cli.Flags, st storage.Storage) *ShowCommand {
	return &ShowCommand{
		flags:   flags,
		storage: st,
	}
}

// Execute runs the command
func (sc *ShowCommand) Execute(cmd *cobra.Command, args []string) error {
	st := sc.storage
	if sc.flags.Archive {
		dsn, err := storage.DSNFromEnv(sc.flags.DotEnvFile())
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		archive, err := storage.NewMySQLStorage(dsn, sc.flags.TablePrefix)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		defer archive.Close()
		st = archive
	}

	summary, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ui.NewFormatter(cmd.OutOrStdout()).PrintSummary(summary)
	return nil
}
