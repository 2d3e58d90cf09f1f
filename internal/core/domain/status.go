package domain

// InstallStatus represents the lifecycle state of one package in a build
// run. The driver reports each transition on the package's telemetry
// vertex and echoes terminal states to the log.
type InstallStatus string

const (
	// StatusPending indicates the package is waiting for earlier installs.
	StatusPending InstallStatus = "pending"
	// StatusInstalling indicates the install is currently running.
	StatusInstalling InstallStatus = "installing"
	// StatusInstalled indicates the install finished successfully.
	StatusInstalled InstallStatus = "installed"
	// StatusFailed indicates an install step or sanity check failed.
	StatusFailed InstallStatus = "failed"
	// StatusAvailable indicates the package was skipped because the module
	// system already provides it.
	StatusAvailable InstallStatus = "available"
)

// IsTerminal reports whether the status is a final state.
func (s InstallStatus) IsTerminal() bool {
	switch s {
	case StatusInstalled, StatusFailed, StatusAvailable:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
