package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"kevlar/internal/config"
	"kevlar/internal/discovery"
	"kevlar/internal/domain"
	"kevlar/internal/workspace"
)

// ExitCodes maps command exit codes onto non-failure statuses.
// Zero means the code is not mapped.
type ExitCodes struct {
	KnownFailure int
	Skip         int
}

// CommandTest runs an external command as the test body
type CommandTest struct {
	Command    string
	Args       []string
	ExitCodes  ExitCodes
	OutputFile string
	// Attach lists extra files, relative to the workspace unless absolute,
	// attached to the outcome event when the command does not pass
	Attach []string
	// Collect lists file name patterns. Matching files the command leaves in
	// the workspace are attached to the outcome event whatever the status.
	Collect []string
}

// NewCommandTest creates a CommandTest writing output to config.DefaultOutputFile
func NewCommandTest(command string, args ...string) *CommandTest {
	return &CommandTest{
		Command:    command,
		Args:       args,
		OutputFile: config.DefaultOutputFile,
	}
}

// Run implements harness.TestCase
func (c *CommandTest) Run(cfg config.TestConfig, rec *domain.Record) error {
	return c.RunAsync(context.Background(), cfg, rec)
}

// RunAsync implements harness.AsyncTestCase. The command runs inside the
// workspace with KEVLAR_WORKSPACE and KEVLAR_TEST_NAME in its environment.
func (c *CommandTest) RunAsync(ctx context.Context, cfg config.TestConfig, rec *domain.Record) error {
	cmd := exec.CommandContext(ctx, c.Command, c.Args...)

	// Set environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("KEVLAR_WORKSPACE=%s", cfg.Path),
		fmt.Sprintf("KEVLAR_TEST_NAME=%s", cfg.Name),
	)

	// Set working directory
	cmd.Dir = cfg.Path

	output, runErr := cmd.CombinedOutput()

	outputPath := cfg.File(c.outputFile())
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		return fmt.Errorf("failed to save command output: %w", err)
	}

	collected, err := c.collect(cfg)
	if err != nil {
		return fmt.Errorf("failed to collect artifacts: %w", err)
	}

	if runErr == nil {
		event := domain.NewEvent(domain.Passed).WithDescription(c.commandLine())
		for _, artifact := range collected {
			event.AddArtifact(artifact)
		}
		rec.Apply(event)
		return nil
	}

	event := c.eventFor(runErr)
	event.AddArtifact(domain.NewArtifact(outputPath, "output").
		WithKind(domain.ArtifactLog).
		WithDescription("Combined stdout and stderr of "+c.commandLine()))
	for _, file := range c.Attach {
		path := file
		if !filepath.IsAbs(path) {
			path = cfg.File(path)
		}
		event.AddArtifact(domain.NewArtifact(path, filepath.Base(path)).WithKind(domain.KindFromPath(path)))
	}
	for _, artifact := range collected {
		event.AddArtifact(artifact)
	}
	return domain.Failure(event)
}

// collect scans the workspace for files matching the Collect patterns,
// ignoring the files the harness writes itself
func (c *CommandTest) collect(cfg config.TestConfig) ([]domain.Artifact, error) {
	if len(c.Collect) == 0 {
		return nil, nil
	}

	skip := []string{c.outputFile(), config.DefaultResultFile}
	if logName, err := workspace.Normalize(cfg.Name); err == nil {
		skip = append(skip, logName+".log")
	}
	scanner := discovery.NewScanner(skip)
	files, err := scanner.Scan(cfg.Path)
	if err != nil {
		return nil, err
	}

	var artifacts []domain.Artifact
	for _, path := range discovery.NewFilter().FilterByPatterns(files, c.Collect) {
		label, err := filepath.Rel(cfg.Path, path)
		if err != nil {
			label = filepath.Base(path)
		}
		artifacts = append(artifacts, domain.NewArtifact(path, label).WithKind(domain.KindFromPath(path)))
	}
	return artifacts, nil
}

func (c *CommandTest) eventFor(runErr error) *domain.Event {
	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return domain.NewEvent(domain.Failed).
			WithDescription(fmt.Sprintf("failed to run %s: %v", c.Command, runErr))
	}

	code := exitErr.ExitCode()
	switch {
	case c.ExitCodes.KnownFailure != 0 && code == c.ExitCodes.KnownFailure:
		return domain.NewEvent(domain.KnownFailure).
			WithDescription(fmt.Sprintf("%s exited with known failure code %d", c.Command, code))
	case c.ExitCodes.Skip != 0 && code == c.ExitCodes.Skip:
		return domain.NewEvent(domain.Skipped).
			WithDescription(fmt.Sprintf("%s requested skip with code %d", c.Command, code))
	}
	return domain.NewEvent(domain.Failed).
		WithDescription(fmt.Sprintf("%s exited with code %d", c.Command, code))
}

func (c *CommandTest) outputFile() string {
	if c.OutputFile == "" {
		return config.DefaultOutputFile
	}
	return c.OutputFile
}

func (c *CommandTest) commandLine() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}
