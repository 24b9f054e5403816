package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the harness configuration read from a file or the environment
type Config struct {
	// Base directory in which test workspaces are created
	Path string `json:"path" yaml:"path"`
	// Harness log level (debug, info, warn, error)
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// TestConfig is the configuration handed to a test body
type TestConfig struct {
	// Test name as given by the caller
	Name string
	// Freshly provisioned workspace for this run
	Path string
	// Harness log level
	LogLevel string
}

// File returns the path of a file inside the test workspace
func (tc TestConfig) File(name string) string {
	return filepath.Join(tc.Path, name)
}

// Source loads a base Config
type Source interface {
	Load() (*Config, error)
}

// Provisioner creates the workspace directory for a run
type Provisioner interface {
	Provision(basePath, testName string) (string, error)
}

// New creates a Config with defaults
func New() *Config {
	return &Config{
		Path:     DefaultWorkspacePath,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the base config from src and provisions a workspace for the test
func Load(testName string, src Source, provisioner Provisioner) (*TestConfig, error) {
	cfg, err := src.Load()
	if err != nil {
		return nil, err
	}

	path, err := provisioner.Provision(cfg.Path, testName)
	if err != nil {
		return nil, err
	}

	return &TestConfig{
		Name:     testName,
		Path:     path,
		LogLevel: cfg.LogLevel,
	}, nil
}

// FileSource loads config from a JSON or YAML file
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource, falling back to DefaultConfigFile
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultConfigFile
	}
	return &FileSource{Path: path}
}

// Load reads and validates the config file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func (s *FileSource) Load() (*Config, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file '%s': %w", s.Path, err)
	}

	cfg := New()
	cfg.Path = ""
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", s.Path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config file '%s': %w", s.Path, err)
	}
	return cfg, nil
}

// EnvSource loads config from environment variables, after applying an
// optional dotenv file
type EnvSource struct {
	EnvFile string
}

// NewEnvSource creates an EnvSource reading DefaultEnvFile
func NewEnvSource() *EnvSource {
	return &EnvSource{EnvFile: DefaultEnvFile}
}

// Load reads KEVLAR_PATH and KEVLAR_LOG_LEVEL. Variables already set in the
// environment win over the dotenv file.
func (s *EnvSource) Load() (*Config, error) {
	if s.EnvFile != "" {
		if err := godotenv.Load(s.EnvFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading env file '%s': %w", s.EnvFile, err)
		}
	}

	cfg := New()
	if path := os.Getenv(EnvWorkspacePath); path != "" {
		cfg.Path = path
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("missing workspace path")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
