package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestEvent_String(t *testing.T) {
	tests := []struct {
		name     string
		event    *Event
		expected string
	}{
		{
			name:     "status only",
			event:    NewEvent(Passed),
			expected: "PASSED",
		},
		{
			name:     "known failure label",
			event:    NewEvent(KnownFailure),
			expected: "KNOWNFAIL",
		},
		{
			name:     "with description",
			event:    NewEvent(Skipped).WithDescription("no device"),
			expected: "SKIPPED :: no device",
		},
		{
			name:     "single artifact",
			event:    NewEvent(Passed).WithArtifact(NewArtifact("a.log", "log")),
			expected: "PASSED :: Captured 1 artifact",
		},
		{
			name: "description and artifacts",
			event: NewEvent(Failed).
				WithDescription("timeout").
				WithArtifact(NewArtifact("a.log", "log")).
				WithArtifact(NewArtifact("b.png", "screenshot")),
			expected: "FAILED :: timeout :: Captured 2 artifacts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEvent_AddArtifact(t *testing.T) {
	event := NewEvent(KnownFailure)
	labels := []string{"first", "second", "third"}
	for _, label := range labels {
		event.AddArtifact(NewArtifact(label+".txt", label))
	}

	if event.Status != KnownFailure {
		t.Errorf("status changed to %s", event.Status)
	}
	if len(event.Artifacts) != len(labels) {
		t.Fatalf("expected %d artifacts, got %d", len(labels), len(event.Artifacts))
	}
	for i, label := range labels {
		if event.Artifacts[i].Label != label {
			t.Errorf("artifact %d: expected label %s, got %s", i, label, event.Artifacts[i].Label)
		}
	}
}

func TestEvent_SetDescription(t *testing.T) {
	event := NewEvent(Failed).WithDescription("first")
	event.SetDescription("second")
	if event.Description != "second" {
		t.Errorf("expected description second, got %s", event.Description)
	}
}

func TestEventFromError(t *testing.T) {
	t.Run("carried event", func(t *testing.T) {
		event := NewEvent(Skipped).WithDescription("not supported")
		err := fmt.Errorf("setup: %w", Failure(event))
		if got := EventFromError(err); got != event {
			t.Errorf("expected the carried event, got %v", got)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		got := EventFromError(errors.New("boom"))
		if got.Status != Failed {
			t.Errorf("expected FAILED, got %s", got.Status)
		}
		if got.Description != "boom" {
			t.Errorf("expected description boom, got %s", got.Description)
		}
	})

	t.Run("error text is the rendered event", func(t *testing.T) {
		err := Failure(NewEvent(Failed).WithDescription("timeout"))
		if err.Error() != "FAILED :: timeout" {
			t.Errorf("unexpected error text: %s", err.Error())
		}
	})
}
