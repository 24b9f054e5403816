// Package harness runs one test body inside a fresh workspace and records its outcome.
package harness

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"kevlar/internal/config"
	"kevlar/internal/domain"
	"kevlar/internal/logging"
	"kevlar/internal/storage"
	"kevlar/internal/workspace"
)

// Version is reported in the log banner
var Version = "dev"

// TestCase is a test body that runs to completion on the calling goroutine
type TestCase interface {
	// Run executes the test. Returning nil means the test succeeded with
	// nothing to report; an error fails it, see domain.Failure.
	Run(cfg config.TestConfig, rec *domain.Record) error
}

// AsyncTestCase is a test body that may block on I/O while it runs
type AsyncTestCase interface {
	RunAsync(ctx context.Context, cfg config.TestConfig, rec *domain.Record) error
}

// TestFunc adapts a function to TestCase
type TestFunc func(cfg config.TestConfig, rec *domain.Record) error

// Run calls f
func (f TestFunc) Run(cfg config.TestConfig, rec *domain.Record) error {
	return f(cfg, rec)
}

// AsyncTestFunc adapts a function to AsyncTestCase
type AsyncTestFunc func(ctx context.Context, cfg config.TestConfig, rec *domain.Record) error

// RunAsync calls f
func (f AsyncTestFunc) RunAsync(ctx context.Context, cfg config.TestConfig, rec *domain.Record) error {
	return f(ctx, cfg, rec)
}

// Options tune how a Harness is built. The zero value is usable.
type Options struct {
	// Provisioner creates the workspace. Defaults to workspace.NewProvisioner().
	Provisioner config.Provisioner
	// LogWriter receives a copy of every log line. Defaults to os.Stderr;
	// use io.Discard to log to the workspace file only.
	LogWriter io.Writer
	// Storage receives the run summary when the test finishes
	Storage []storage.Storage
}

// Harness owns the workspace, logger and record of one test run
type Harness struct {
	config  *config.TestConfig
	logger  *logging.Logger
	record  *domain.Record
	storage []storage.Storage
	summary *domain.RecordSummary
}

// New loads the config, provisions the workspace, sets up logging to the
// workspace and creates the record. Any error here is a setup error and no
// test logic should run.
func New(testName string, src config.Source, opts Options) (*Harness, error) {
	provisioner := opts.Provisioner
	if provisioner == nil {
		provisioner = workspace.NewProvisioner()
	}
	logWriter := opts.LogWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}

	cfg, err := config.Load(testName, src, provisioner)
	if err != nil {
		return nil, err
	}

	logName, err := workspace.Normalize(testName)
	if err != nil {
		return nil, err
	}
	logger, err := logging.SetupWithWriter(logName, cfg.Path, cfg.LogLevel, logWriter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging in %s: %w", cfg.Path, err)
	}

	logger.Infof("Kevlar Test Harness :: %s", Version)
	logger.Info("-----------------------------")
	logger.WithField("workspace", cfg.Path).Debug("workspace ready")

	return &Harness{
		config:  cfg,
		logger:  logger,
		record:  domain.NewRecord(testName, logger),
		storage: opts.Storage,
	}, nil
}

// Config returns the config handed to the test body
func (h *Harness) Config() config.TestConfig {
	return *h.config
}

// Record returns the run's record
func (h *Harness) Record() *domain.Record {
	return h.record
}

// Logger returns the harness logger
func (h *Harness) Logger() *logging.Logger {
	return h.logger
}

// Summary returns the final summary, or nil before the test has run
func (h *Harness) Summary() *domain.RecordSummary {
	return h.summary
}

// Run invokes the test body once and returns the record
func (h *Harness) Run(tc TestCase) *domain.Record {
	err := invoke(func() error {
		return tc.Run(*h.config, h.record)
	})
	return h.finish(err)
}

// RunAsync invokes the test body once on its own goroutine and waits for it
// to return. The harness does not touch the record while the body runs.
func (h *Harness) RunAsync(ctx context.Context, tc AsyncTestCase) *domain.Record {
	done := make(chan error, 1)
	go func() {
		done <- invoke(func() error {
			return tc.RunAsync(ctx, *h.config, h.record)
		})
	}()
	return h.finish(<-done)
}

// Close closes the workspace log file
func (h *Harness) Close() error {
	return h.logger.Close()
}

func (h *Harness) finish(outcome error) *domain.Record {
	h.record.ApplyOutcome(outcome)
	h.logger.Infof("Test Result: %s", h.record.Status())

	summary := h.record.Summary()
	summary.Workspace = h.config.Path
	summary.FinishedAt = time.Now()
	h.summary = &summary

	for _, st := range h.storage {
		if err := st.Save(&summary); err != nil {
			h.logger.WithError(err).Warn("failed to save test results")
		}
	}
	return h.record
}

// invoke runs fn and turns a panic into a Failed outcome
func invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.Failure(domain.NewEvent(domain.Failed).WithDescription(fmt.Sprintf("test panicked: %v", r)))
		}
	}()
	return fn()
}
