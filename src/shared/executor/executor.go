package executor

import (
	"context"
	"os/exec"
)

var _ Executor = BinaryFileExecutor{}

type Executor interface {
	CommandContext(ctx context.Context, name string, arg ...string) Command
}

type Command interface {
	Output() ([]byte, error)
	Start() error
	Wait() error
}

// the only reason this is here is to create an interface for testing
type BinaryFileExecutor struct{}

func (b BinaryFileExecutor) CommandContext(ctx context.Context, name string, arg ...string) Command {
	return exec.CommandContext(ctx, name, arg...)
}
