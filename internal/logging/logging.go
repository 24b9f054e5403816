package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger writes harness output to a log file in the workspace and to stderr
type Logger struct {
	*logrus.Logger
	file *os.File
	path string
}

// Setup creates a logger writing to "<dir>/<testName>.log", duplicated to stderr
func Setup(testName, dir, level string) (*Logger, error) {
	return SetupWithWriter(testName, dir, level, os.Stderr)
}

// SetupWithWriter is Setup with a custom duplicate writer. A nil writer logs to the file only.
func SetupWithWriter(testName, dir, level string, duplicate io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, testName+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var out io.Writer = file
	if duplicate != nil {
		out = io.MultiWriter(file, duplicate)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	return &Logger{Logger: logger, file: file, path: path}, nil
}

// Path returns the log file path
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file
func (l *Logger) Close() error {
	return l.file.Close()
}

// ParseLevel converts a level name into a logrus level. Empty means info.
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}
