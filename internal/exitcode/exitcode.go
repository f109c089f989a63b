// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty required field, no such card).
	UserError = 1

	// ConfigError indicates an invalid configuration.
	ConfigError = 2

	// BackendError indicates a network or remote service error.
	BackendError = 3
)
