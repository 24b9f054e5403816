package commands

import (
	"fmt"
	"io"

	"kevlar/internal/cli"
	"kevlar/internal/config"
	"kevlar/internal/domain"
	"kevlar/internal/execution"
	"kevlar/internal/harness"
	"kevlar/internal/storage"
	"kevlar/internal/ui"

	"github.com/spf13/cobra"
)

// StatusError is returned when a test ends with a status that should fail the process
type StatusError struct {
	Name   string
	Status domain.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("test %s finished with %s", e.Name, e.Status)
}

// RunCommand handles the run command
type RunCommand struct {
	flags       *cli.Flags
	provisioner config.Provisioner
	storage     storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(flags *cli.Flags, provisioner config.Provisioner, st storage.Storage) *RunCommand {
	return &RunCommand{
		flags:       flags,
		provisioner: provisioner,
		storage:     st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	sinks := []storage.Storage{rc.storage}
	if rc.flags.Archive {
		dsn, err := storage.DSNFromEnv(rc.flags.DotEnvFile())
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		archive, err := storage.NewMySQLStorage(dsn, rc.flags.TablePrefix)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		defer archive.Close()
		sinks = append(sinks, archive)
	}

	var logWriter io.Writer = cmd.ErrOrStderr()
	if rc.flags.Quiet {
		logWriter = io.Discard
	}

	h, err := harness.New(rc.flags.Name, rc.flags.Source(), harness.Options{
		Provisioner: rc.provisioner,
		LogWriter:   logWriter,
		Storage:     sinks,
	})
	if err != nil {
		return err
	}
	defer h.Close()

	test := execution.NewCommandTest(args[0], args[1:]...)
	test.ExitCodes = rc.flags.ExitCodes()
	test.Attach = rc.flags.Attach
	test.Collect = rc.flags.Collect

	var spinner *ui.Spinner
	if rc.flags.Quiet {
		spinner = ui.NewSpinner(rc.flags.Name, cmd.ErrOrStderr())
		spinner.Start()
	}

	rec := h.RunAsync(cmd.Context(), test)

	if spinner != nil {
		spinner.Stop()
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintSummary(h.Summary())

	if !rec.Status().IsSuccessful() {
		return &StatusError{Name: rec.Name(), Status: rec.Status()}
	}
	return nil
}
