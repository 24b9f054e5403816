package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Event is a single notable occurrence during a test run
type Event struct {
	Status      Status     `json:"status" yaml:"status"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// NewEvent creates an event with no description and no artifacts
func NewEvent(status Status) *Event {
	return &Event{Status: status}
}

// WithDescription sets the description and returns the event for chaining
func (e *Event) WithDescription(description string) *Event {
	e.Description = description
	return e
}

// WithArtifact appends an artifact and returns the event for chaining
func (e *Event) WithArtifact(artifact Artifact) *Event {
	e.AddArtifact(artifact)
	return e
}

// SetDescription replaces the description in place
func (e *Event) SetDescription(description string) {
	e.Description = description
}

// AddArtifact appends an artifact. The event status is left untouched.
func (e *Event) AddArtifact(artifact Artifact) {
	e.Artifacts = append(e.Artifacts, artifact)
}

// String renders the event as "LABEL :: description :: Captured N artifact(s)",
// leaving out the parts that are empty.
func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.Status.String())
	if e.Description != "" {
		b.WriteString(" :: ")
		b.WriteString(e.Description)
	}
	if n := len(e.Artifacts); n > 0 {
		noun := "artifacts"
		if n == 1 {
			noun = "artifact"
		}
		fmt.Fprintf(&b, " :: Captured %d %s", n, noun)
	}
	return b.String()
}

// EventError is the error a test body returns to fail with an explanatory event
type EventError struct {
	Event *Event
}

// Error implements the error interface
func (e *EventError) Error() string {
	if e.Event == nil {
		return Failed.String() + " :: " + missingEventDescription
	}
	return e.Event.String()
}

// Failure wraps an event so it can be returned as a test outcome
func Failure(event *Event) error {
	return &EventError{Event: event}
}

const missingEventDescription = "test failed without reporting an event"

// EventFromError extracts the event carried by err.
// Errors that carry no event become a Failed event described by the error text.
func EventFromError(err error) *Event {
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		if eventErr.Event == nil {
			return NewEvent(Failed).WithDescription(missingEventDescription)
		}
		return eventErr.Event
	}
	return NewEvent(Failed).WithDescription(err.Error())
}
