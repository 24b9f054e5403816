package domain

import (
	"time"

	"github.com/google/uuid"
)

// Logger receives one line per applied event.
// *logrus.Logger and logrus.FieldLogger satisfy it.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})  {}
func (nopLogger) Error(args ...interface{}) {}

// Record is the aggregate result of one test run.
// It is owned by a single run and is not safe for concurrent use.
type Record struct {
	id        string
	name      string
	status    Status
	history   []*Event
	startedAt time.Time
	logger    Logger
}

// NewRecord creates a passing record with an empty history.
// A nil logger discards event output.
func NewRecord(name string, logger Logger) *Record {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Record{
		id:        uuid.NewString(),
		name:      name,
		status:    Passed,
		history:   []*Event{},
		startedAt: time.Now(),
		logger:    logger,
	}
}

// ID returns the unique run identifier
func (r *Record) ID() string {
	return r.id
}

// Name returns the test name
func (r *Record) Name() string {
	return r.name
}

// Status returns the current overall status
func (r *Record) Status() Status {
	return r.status
}

// History returns copies of the applied events in the order they were
// applied. Changing them does not affect the record.
func (r *Record) History() []*Event {
	history := make([]*Event, 0, len(r.history))
	for _, event := range r.history {
		history = append(history, copyEvent(event))
	}
	return history
}

func copyEvent(event *Event) *Event {
	e := *event
	e.Artifacts = append([]Artifact(nil), event.Artifacts...)
	return &e
}

// Apply logs the event, merges its status into the overall status and
// appends it to the history. The overall status never goes down.
// A nil event is ignored.
func (r *Record) Apply(event *Event) {
	if event == nil {
		return
	}
	switch event.Status {
	case Passed:
		r.logger.Info(event.String())
	case Failed:
		r.logger.Error(event.String())
	case KnownFailure, Skipped:
		r.logger.Warn(event.String())
	}

	r.status = MaxStatus(r.status, event.Status)
	r.history = append(r.history, event)
}

// ApplyOutcome merges the outcome returned by a test body.
// A nil error is a success with nothing to report: the status merges toward
// Passed and no event is logged or recorded. Any other error is applied as
// the event it carries.
func (r *Record) ApplyOutcome(err error) {
	if err == nil {
		r.status = MaxStatus(r.status, Passed)
		return
	}
	r.Apply(EventFromError(err))
}

// RecordSummary is a serializable snapshot of a record
type RecordSummary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Name       string    `json:"name" yaml:"name"`
	Status     Status    `json:"status" yaml:"status"`
	Workspace  string    `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	History    []Event   `json:"history" yaml:"history"`
}

// Summary snapshots the record. Workspace and FinishedAt are left for the caller.
func (r *Record) Summary() RecordSummary {
	history := make([]Event, 0, len(r.history))
	for _, event := range r.history {
		history = append(history, *copyEvent(event))
	}
	return RecordSummary{
		RunID:     r.id,
		Name:      r.name,
		Status:    r.status,
		StartedAt: r.startedAt,
		History:   history,
	}
}
