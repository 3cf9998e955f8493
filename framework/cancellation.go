package framework

import "context"

// CancellationController is a one-way cancellation flag shared by everything that runs as
// part of a test run. Once signaled it stays signaled.
type CancellationController struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCancellationController creates a controller that is also signaled if parent is done.
// A nil parent is treated as context.Background().
func NewCancellationController(parent context.Context) *CancellationController {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &CancellationController{ctx: ctx, cancel: cancel}
}

// Signal requests cancellation. Calling it more than once has no further effect.
func (c *CancellationController) Signal() {
	c.cancel()
}

// IsSignaled returns true once Signal has been called or the parent context is done.
func (c *CancellationController) IsSignaled() bool {
	return c.ctx.Err() != nil
}

// Context returns a context that is done as soon as the controller is signaled, so that
// blocking operations can observe cancellation cooperatively.
func (c *CancellationController) Context() context.Context {
	return c.ctx
}
