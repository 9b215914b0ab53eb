package command

import "context"

// Wait blocks until every invocation started by Execute has returned.
func (c *Command[P]) Wait() {
	c.e.wait()
}

// Run performs one invocation in the calling goroutine.
func (c *Command[P]) Run(param P) {
	_ = c.e.run(context.Background(), param)
}
