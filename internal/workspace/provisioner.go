package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the second-precision timestamp used in workspace names
const TimestampLayout = "20060102_150405"

// ErrInvalidTestName is returned when a test name has no alphanumeric content
var ErrInvalidTestName = errors.New("invalid test name")

// SetupError reports a workspace that could not be created
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("unable to create test workspace %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Provisioner creates uniquely named workspace directories
type Provisioner struct {
	// Now returns the time used for directory names. Defaults to time.Now.
	Now func() time.Time
}

// NewProvisioner creates a Provisioner using the local clock
func NewProvisioner() *Provisioner {
	return &Provisioner{Now: time.Now}
}

// Provision creates a fresh directory for the test under basePath and
// returns its path. Names look like "<name>_<timestamp>" with a "_<n>"
// suffix added when a previous attempt collided.
func (p *Provisioner) Provision(basePath, testName string) (string, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return "", &SetupError{Path: basePath, Err: err}
	}

	base, err := Normalize(testName)
	if err != nil {
		return "", err
	}

	now := p.Now
	if now == nil {
		now = time.Now
	}

	for attempt := 0; ; attempt++ {
		name := base + "_" + now().Local().Format(TimestampLayout)
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d", name, attempt)
		}

		dir := filepath.Join(basePath, name)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", &SetupError{Path: dir, Err: err}
		}
	}
}

// Provision creates a workspace using the local clock
func Provision(basePath, testName string) (string, error) {
	return NewProvisioner().Provision(basePath, testName)
}

// Normalize lowercases the test name and drops everything outside [a-z0-9]
func Normalize(testName string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(testName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTestName, testName)
	}
	return b.String(), nil
}
