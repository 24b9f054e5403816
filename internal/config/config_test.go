package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubProvisioner struct {
	base string
	name string
	err  error
}

func (s *stubProvisioner) Provision(basePath, testName string) (string, error) {
	s.base = basePath
	s.name = testName
	if s.err != nil {
		return "", s.err
	}
	return filepath.Join(basePath, "ws"), nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Path != DefaultWorkspacePath {
		t.Errorf("expected Path %s, got %s", DefaultWorkspacePath, cfg.Path)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected LogLevel %s, got %s", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestFileSource_Load(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected string
		wantErr  bool
	}{
		{
			name:     "json",
			file:     "config.json",
			content:  `{"path": "/tmp/kevlar"}`,
			expected: "/tmp/kevlar",
		},
		{
			name:     "yaml",
			file:     "config.yaml",
			content:  "path: /var/kevlar\nlog_level: debug\n",
			expected: "/var/kevlar",
		},
		{
			name:    "missing path",
			file:    "config.json",
			content: `{}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			file:    "config.json",
			content: `{"path": `,
			wantErr: true,
		},
		{
			name:    "bad log level",
			file:    "config.yml",
			content: "path: /x\nlog_level: loud\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := NewFileSource(path).Load()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Path != tt.expected {
				t.Errorf("expected path %s, got %s", tt.expected, cfg.Path)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource("/non/existent/config.json").Load()
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not exist error, got %v", err)
		}
	})
}

func TestEnvSource_Load(t *testing.T) {
	t.Run("environment variables", func(t *testing.T) {
		t.Setenv(EnvWorkspacePath, "/env/path")
		t.Setenv(EnvLogLevel, "warn")

		cfg, err := (&EnvSource{}).Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Path != "/env/path" || cfg.LogLevel != "warn" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("dotenv file", func(t *testing.T) {
		t.Setenv(EnvWorkspacePath, "")
		os.Unsetenv(EnvWorkspacePath)
		envFile := writeFile(t, ".env", EnvWorkspacePath+"=/from/dotenv\n")

		cfg, err := (&EnvSource{EnvFile: envFile}).Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Path != "/from/dotenv" {
			t.Errorf("expected /from/dotenv, got %s", cfg.Path)
		}
	})

	t.Run("missing dotenv file uses defaults", func(t *testing.T) {
		t.Setenv(EnvWorkspacePath, "")
		cfg, err := (&EnvSource{EnvFile: "/non/existent/.env"}).Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Path != DefaultWorkspacePath {
			t.Errorf("expected %s, got %s", DefaultWorkspacePath, cfg.Path)
		}
	})
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.json", `{"path": "/base"}`)

	t.Run("provisions under the configured path", func(t *testing.T) {
		p := &stubProvisioner{}
		tc, err := Load("My Test", NewFileSource(path), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.base != "/base" || p.name != "My Test" {
			t.Errorf("provisioner called with %s, %s", p.base, p.name)
		}
		if tc.Path != filepath.Join("/base", "ws") {
			t.Errorf("unexpected workspace %s", tc.Path)
		}
		if tc.File("out.log") != filepath.Join("/base", "ws", "out.log") {
			t.Errorf("unexpected file path %s", tc.File("out.log"))
		}
	})

	t.Run("provision errors are returned", func(t *testing.T) {
		p := &stubProvisioner{err: errors.New("denied")}
		if _, err := Load("test", NewFileSource(path), p); err == nil {
			t.Error("expected error")
		}
	})
}
