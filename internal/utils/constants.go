package utils

const (
	// ApplicationName is the command name and the prefix of user-facing messages.
	ApplicationName = "ftree"
	// ConfigFileName is the name of both the global and the local configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".ftree"
	// CurrentDirectoryPath is the default root when no path is supplied.
	CurrentDirectoryPath = "."

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes a fatal command error.
	ApplicationExecutionFailedMessage = ApplicationName + " failed"
)
