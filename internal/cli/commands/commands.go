package commands

import (
	"os"

	"kevlar/internal/cli"
	"kevlar/internal/config"
	"kevlar/internal/storage"
	"kevlar/internal/ui"
	"kevlar/internal/workspace"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run       *RunCommand
	Workspace *WorkspaceCommand
	Show      *ShowCommand
	View      *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(flags *cli.Flags) *Commands {
	// Initialize dependencies
	provisioner := workspace.NewProvisioner()
	jsonStorage := storage.NewJSONStorage(config.DefaultResultFile)
	viewer := ui.NewHistoryViewer(os.Stdout)

	return &Commands{
		Run:       NewRunCommand(flags, provisioner, jsonStorage),
		Workspace: NewWorkspaceCommand(flags, provisioner),
		Show:      NewShowCommand(flags, jsonStorage),
		View:      NewViewCommand(flags, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultConfigFile, "Path to the JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.UseEnv, "env", false, "Read config from KEVLAR_* environment variables instead of a file")
	rootCmd.PersistentFlags().StringVar(&flags.EnvFile, "env-file", "", "Dotenv file loaded before reading the environment (default .env)")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run --name NAME [flags] -- COMMAND [ARGS...]",
		Short: "Run a command as a test",
		Long:  "Provision a workspace, run the command inside it and record the outcome. Exits with 1 when the test ends FAILED or SKIPPED.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Test name used for the workspace and log file")
	runCmd.Flags().IntVar(&flags.KnownFailCode, "known-fail-code", 0, "Exit code reported as a known failure")
	runCmd.Flags().IntVar(&flags.SkipCode, "skip-code", 0, "Exit code reported as a skip")
	runCmd.Flags().StringArrayVarP(&flags.Attach, "attach", "a", nil, "File to attach to the result when the test does not pass (repeatable)")
	runCmd.Flags().StringArrayVar(&flags.Collect, "collect", nil, "File name pattern collected from the workspace after the run, e.g. '*.png' (repeatable)")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Log to the workspace only and show a spinner instead")
	runCmd.Flags().BoolVar(&flags.Archive, "archive", false, "Also archive the result in MySQL (DB_* environment variables)")
	runCmd.Flags().StringVar(&flags.TablePrefix, "table-prefix", "kevlar", "Table prefix for the MySQL archive")
	runCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(runCmd)

	// Workspace command
	workspaceCmd := &cobra.Command{
		Use:   "workspace --name NAME",
		Short: "Create a test workspace",
		Long:  "Create a uniquely named workspace directory for a test and print its path",
		Args:  cobra.NoArgs,
		RunE:  c.Workspace.Execute,
	}
	workspaceCmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Test name used for the workspace")
	workspaceCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(workspaceCmd)

	// Show command
	showCmd := &cobra.Command{
		Use:   "show RESULT",
		Short: "Print a stored test result",
		Long:  "Print the result stored in a workspace (or result file), or a run id with --archive",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Show.Execute,
	}
	showCmd.Flags().BoolVar(&flags.Archive, "archive", false, "Load the run id from the MySQL archive")
	showCmd.Flags().StringVar(&flags.TablePrefix, "table-prefix", "kevlar", "Table prefix for the MySQL archive")
	rootCmd.AddCommand(showCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view RESULT",
		Short: "Browse a stored test result interactively",
		Long:  "Display the event history and artifacts of a stored result in an interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  c.View.Execute,
	}
	rootCmd.AddCommand(viewCmd)
}
