package dummy

import (
	"context"
	"sync"

	"github.com/veedubyou/split-studio/src/shared/executor"
)

var _ executor.Executor = &Executor{}

// Executor pretends to run host binaries. Started commands run until their
// context is cancelled or the test finishes them.
type Executor struct {
	Unavailable bool
	ProbeOutput string

	mu       sync.Mutex
	commands []*Command
}

func NewDummyExecutor(probeOutput string) *Executor {
	return &Executor{
		Unavailable: false,
		ProbeOutput: probeOutput,
	}
}

func (e *Executor) CommandContext(ctx context.Context, name string, arg ...string) executor.Command {
	e.mu.Lock()
	defer e.mu.Unlock()

	command := &Command{
		ctx:         ctx,
		Name:        name,
		Args:        arg,
		unavailable: e.Unavailable,
		probeOutput: e.ProbeOutput,
		finish:      make(chan error, 1),
	}

	e.commands = append(e.commands, command)
	return command
}

func (e *Executor) Commands() []*Command {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]*Command{}, e.commands...)
}

func (e *Executor) Started() []*Command {
	started := []*Command{}
	for _, command := range e.Commands() {
		if command.IsStarted() {
			started = append(started, command)
		}
	}

	return started
}

type Command struct {
	Name string
	Args []string

	ctx         context.Context
	unavailable bool
	probeOutput string
	finish      chan error

	mu      sync.Mutex
	started bool
}

func (c *Command) Output() ([]byte, error) {
	if c.unavailable {
		return nil, NetworkFailure
	}

	return []byte(c.probeOutput), nil
}

func (c *Command) Start() error {
	if c.unavailable {
		return NetworkFailure
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	return nil
}

func (c *Command) Wait() error {
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	case err := <-c.finish:
		return err
	}
}

func (c *Command) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.started
}

func (c *Command) Cancelled() bool {
	return c.ctx.Err() != nil
}

// Finish makes a started command exit with the given error
func (c *Command) Finish(err error) {
	c.finish <- err
}
