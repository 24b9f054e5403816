package domain

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRecord_New(t *testing.T) {
	rec := NewRecord("suite1", nil)

	if rec.Name() != "suite1" {
		t.Errorf("expected name suite1, got %s", rec.Name())
	}
	if rec.Status() != Passed {
		t.Errorf("expected PASSED, got %s", rec.Status())
	}
	if len(rec.History()) != 0 {
		t.Errorf("expected empty history, got %d events", len(rec.History()))
	}
	if rec.ID() == "" {
		t.Error("expected a run id")
	}
}

func TestRecord_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		applied  []Status
		expected []Status
	}{
		{
			name:     "failure is not undone by a pass",
			applied:  []Status{Failed, Passed},
			expected: []Status{Failed, Failed},
		},
		{
			name:     "skip outranks known failure",
			applied:  []Status{KnownFailure, Skipped},
			expected: []Status{KnownFailure, Skipped},
		},
		{
			name:     "known failure does not downgrade failure",
			applied:  []Status{Passed, Failed, KnownFailure, Passed},
			expected: []Status{Passed, Failed, Failed, Failed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(tt.name, nil)
			for i, status := range tt.applied {
				rec.Apply(NewEvent(status))
				if rec.Status() != tt.expected[i] {
					t.Errorf("after event %d: expected %s, got %s", i, tt.expected[i], rec.Status())
				}
			}
		})
	}
}

func TestRecord_Monotonic(t *testing.T) {
	sequence := []Status{Passed, Skipped, Passed, KnownFailure, Failed, Passed, Skipped}
	rec := NewRecord("monotonic", nil)
	previous := rec.Status()

	for _, status := range sequence {
		rec.Apply(NewEvent(status))
		if rec.Status().Precedence() < previous.Precedence() {
			t.Fatalf("status went down from %s to %s", previous, rec.Status())
		}
		previous = rec.Status()
	}
}

func TestRecord_ReapplySameEvent(t *testing.T) {
	event := NewEvent(KnownFailure).WithDescription("flaky")

	once := NewRecord("once", nil)
	once.Apply(event)

	twice := NewRecord("twice", nil)
	twice.Apply(event)
	twice.Apply(event)

	if once.Status() != twice.Status() {
		t.Errorf("expected %s, got %s", once.Status(), twice.Status())
	}
	if len(twice.History()) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(twice.History()))
	}
}

func TestRecord_HistoryOrder(t *testing.T) {
	rec := NewRecord("order", nil)
	descriptions := []string{"one", "two", "three", "four"}
	for _, d := range descriptions {
		rec.Apply(NewEvent(Passed).WithDescription(d))
	}

	history := rec.History()
	if len(history) != len(descriptions) {
		t.Fatalf("expected %d events, got %d", len(descriptions), len(history))
	}
	for i, d := range descriptions {
		if history[i].Description != d {
			t.Errorf("event %d: expected %s, got %s", i, d, history[i].Description)
		}
	}

	// Mutating the returned slice must not touch the record.
	history[0] = NewEvent(Skipped)
	if rec.History()[0].Description != "one" {
		t.Error("history was modified through the accessor")
	}
}

func TestRecord_LogRouting(t *testing.T) {
	tests := []struct {
		status Status
		level  logrus.Level
	}{
		{Passed, logrus.InfoLevel},
		{Failed, logrus.ErrorLevel},
		{KnownFailure, logrus.WarnLevel},
		{Skipped, logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			rec := NewRecord("routing", logger)
			event := NewEvent(tt.status).WithDescription("something")
			rec.Apply(event)

			entries := hook.AllEntries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 log entry, got %d", len(entries))
			}
			if entries[0].Level != tt.level {
				t.Errorf("expected level %s, got %s", tt.level, entries[0].Level)
			}
			if entries[0].Message != event.String() {
				t.Errorf("expected message %q, got %q", event.String(), entries[0].Message)
			}
		})
	}
}

func TestRecord_ApplyOutcome(t *testing.T) {
	t.Run("success records nothing", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		rec := NewRecord("outcome", logger)
		rec.ApplyOutcome(nil)

		if rec.Status() != Passed {
			t.Errorf("expected PASSED, got %s", rec.Status())
		}
		if len(rec.History()) != 0 {
			t.Errorf("expected empty history, got %d", len(rec.History()))
		}
		if len(hook.AllEntries()) != 0 {
			t.Errorf("expected no log entries, got %d", len(hook.AllEntries()))
		}
	})

	t.Run("success keeps an earlier failure", func(t *testing.T) {
		rec := NewRecord("outcome", nil)
		rec.Apply(NewEvent(Failed))
		rec.ApplyOutcome(nil)
		if rec.Status() != Failed {
			t.Errorf("expected FAILED, got %s", rec.Status())
		}
	})

	t.Run("failure applies the carried event", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		rec := NewRecord("outcome", logger)
		event := NewEvent(KnownFailure).WithDescription("issue 42")
		rec.ApplyOutcome(Failure(event))

		if rec.Status() != KnownFailure {
			t.Errorf("expected KNOWNFAIL, got %s", rec.Status())
		}
		if history := rec.History(); len(history) != 1 || history[0].String() != event.String() {
			t.Errorf("expected the carried event in history, got %v", history)
		}
		if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
			t.Errorf("expected a warning entry, got %v", entry)
		}
	})

	t.Run("plain error fails the record", func(t *testing.T) {
		rec := NewRecord("outcome", nil)
		rec.ApplyOutcome(errors.New("connection refused"))
		if rec.Status() != Failed {
			t.Errorf("expected FAILED, got %s", rec.Status())
		}
	})
}

func TestRecord_Summary(t *testing.T) {
	rec := NewRecord("summary", nil)
	event := NewEvent(Failed).WithDescription("timeout").
		WithArtifact(NewArtifact("out.log", "output").WithKind(ArtifactLog))
	rec.Apply(event)

	summary := rec.Summary()
	if summary.RunID != rec.ID() || summary.Name != "summary" || summary.Status != Failed {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(summary.History) != 1 || summary.History[0].String() != event.String() {
		t.Fatalf("unexpected history: %+v", summary.History)
	}

	event.AddArtifact(NewArtifact("late.log", "late"))
	if len(summary.History[0].Artifacts) != 1 {
		t.Error("summary shares artifacts with the live event")
	}
}

func TestRecord_HistoryIsACopy(t *testing.T) {
	rec := NewRecord("copy", nil)
	rec.Apply(NewEvent(Failed).WithDescription("timeout"))

	history := rec.History()
	history[0].SetDescription("rewritten")
	history[0].AddArtifact(NewArtifact("late.log", "late"))

	stored := rec.History()[0]
	if stored.Description != "timeout" || len(stored.Artifacts) != 0 {
		t.Errorf("history entry was modified through a copy: %+v", stored)
	}
}

func TestRecord_NilEvents(t *testing.T) {
	t.Run("apply nil is ignored", func(t *testing.T) {
		rec := NewRecord("nil", nil)
		rec.Apply(nil)
		if rec.Status() != Passed || len(rec.History()) != 0 {
			t.Errorf("expected untouched record, got %s with %d events", rec.Status(), len(rec.History()))
		}
	})

	t.Run("failure without event fails the record", func(t *testing.T) {
		rec := NewRecord("nil", nil)
		err := Failure(nil)
		if err.Error() == "" {
			t.Error("expected an error message")
		}

		rec.ApplyOutcome(err)
		if rec.Status() != Failed {
			t.Errorf("expected FAILED, got %s", rec.Status())
		}
		history := rec.History()
		if len(history) != 1 || history[0].Description != missingEventDescription {
			t.Errorf("unexpected history: %v", history)
		}
	})
}
