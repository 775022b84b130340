package ports

import "context"

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env holds overrides applied on top of the process environment.
	Env map[string]string
}

// CommandRunner executes external toolchain commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}
