package domain

import "fmt"

// Status is the outcome level a test run or a single event can reach
type Status int

const (
	// Passed means the test passed.
	Passed Status = iota
	// KnownFailure means the test hit an issue that is not going to be fixed soon.
	// It's basically a pass but we still want to know when it is encountered.
	KnownFailure
	// Failed means the test failed due to a bug either in the SUT or the test.
	Failed
	// Skipped means the test was skipped by manual intervention or unmet requirements.
	// It provided no signal at all, so it outranks every other status.
	Skipped
)

var statusLabels = map[Status]string{
	Passed:       "PASSED",
	KnownFailure: "KNOWNFAIL",
	Failed:       "FAILED",
	Skipped:      "SKIPPED",
}

// Statuses lists every status in ascending precedence
var Statuses = []Status{Passed, KnownFailure, Failed, Skipped}

// Precedence returns the fixed rank used when merging statuses.
// Do not renumber these values, stored results depend on them.
func (s Status) Precedence() int {
	switch s {
	case Passed:
		return 0
	case KnownFailure:
		return 1
	case Failed:
		return 2
	case Skipped:
		return 3
	}
	return 0
}

// String returns the display label of the status
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsSuccessful reports whether the status should count as a successful run.
// KnownFailure counts as success, Failed and Skipped do not.
func (s Status) IsSuccessful() bool {
	return s == Passed || s == KnownFailure
}

// MaxStatus returns whichever status has the higher precedence.
// On a tie the current status is kept.
func MaxStatus(current, incoming Status) Status {
	if incoming.Precedence() > current.Precedence() {
		return incoming
	}
	return current
}

// ParseStatus converts a display label back into a Status
func ParseStatus(label string) (Status, error) {
	for status, l := range statusLabels {
		if l == label {
			return status, nil
		}
	}
	return Passed, fmt.Errorf("unknown status label: %q", label)
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
