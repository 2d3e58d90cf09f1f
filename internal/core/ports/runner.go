package ports

import "context"

// Command describes one process invocation for a Runner.
type Command struct {
	// Argv is the command and its arguments; Argv[0] is resolved against
	// the PATH of the merged environment when not absolute.
	Argv []string
	// Dir is the working directory; empty means the process default.
	Dir string
	// Env holds extra "KEY=VALUE" entries layered over the inherited
	// environment, with PATH entries prepended rather than replaced.
	Env []string
}

// Runner executes install commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes cmd and returns an error carrying the exit code when
	// the process fails. Output is streamed to the telemetry vertex found
	// in ctx, falling back to the runner's logger.
	Run(ctx context.Context, cmd Command) error
}
