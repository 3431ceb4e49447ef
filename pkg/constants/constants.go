// Package constants provides shared constants used throughout cmdevents.
package constants

// Exit code constants used by the default handlers
const (
	// ExitSuccess is used for help and version output
	ExitSuccess = 0

	// ExitUsage is used for user input errors (unknown commands, missing values)
	ExitUsage = 1
)

// FilePermissions is the permission for created log files (rw-r--r--)
const FilePermissions = 0644

// Configuration constants
const (
	// AppName is the name of the demo CLI binary
	AppName = "cmdevents"

	// EnvPrefix is the prefix for environment variables read by the CLI
	EnvPrefix = "CMDEVENTS"

	// ConfigFileName is the config file looked up in $HOME and the working directory
	ConfigFileName = ".cmdevents"

	// DefaultOverridesFile is the overrides file picked up when none is configured
	DefaultOverridesFile = "overrides.yaml"
)

// Annotation keys used on cobra commands to declare positional arguments
const (
	// AnnotationArgs lists positional argument names, space separated.
	// A trailing "..." marks a variadic argument and a leading "?" an optional one.
	AnnotationArgs = "cmdevents.args"
)
