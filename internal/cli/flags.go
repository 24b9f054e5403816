package cli

import (
	"kevlar/internal/config"
	"kevlar/internal/execution"
)

// Flags holds command-line flags
type Flags struct {
	Name          string
	ConfigFile    string
	UseEnv        bool
	EnvFile       string
	KnownFailCode int
	SkipCode      int
	Attach        []string
	Collect       []string
	Quiet         bool
	Archive       bool
	TablePrefix   string
}

// Source returns the config source selected by the flags
func (f *Flags) Source() config.Source {
	if f.UseEnv {
		src := config.NewEnvSource()
		if f.EnvFile != "" {
			src.EnvFile = f.EnvFile
		}
		return src
	}
	return config.NewFileSource(f.ConfigFile)
}

// ExitCodes converts the exit code flags for the command runner
func (f *Flags) ExitCodes() execution.ExitCodes {
	return execution.ExitCodes{
		KnownFailure: f.KnownFailCode,
		Skip:         f.SkipCode,
	}
}

// DotEnvFile returns the dotenv file used for database settings
func (f *Flags) DotEnvFile() string {
	if f.EnvFile != "" {
		return f.EnvFile
	}
	return config.DefaultEnvFile
}
