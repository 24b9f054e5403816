package config

const (
	// DefaultConfigFile is the config file used when none is given
	DefaultConfigFile = "./config.json"
	// DefaultWorkspacePath is the base workspace directory when the config leaves it empty
	DefaultWorkspacePath = "./workspace"
	// DefaultEnvFile is the dotenv file read by the environment source
	DefaultEnvFile = ".env"
	// DefaultResultFile is the name of the stored result inside a workspace
	DefaultResultFile = "result.json"
	// DefaultOutputFile is the captured output of a command test
	DefaultOutputFile = "output.log"
	// DefaultLogLevel is the harness log level
	DefaultLogLevel = "info"
)

// Environment variables read by the environment source
const (
	EnvWorkspacePath = "KEVLAR_PATH"
	EnvLogLevel      = "KEVLAR_LOG_LEVEL"
)
