package lifecycle

import (
	"context"
	"reflect"
)

// LifecycleHook is an extension point that runs around a test. Before is called ahead of the
// test body and After once it has finished, but After is only called if Before succeeded.
type LifecycleHook interface {
	Before(ctx context.Context, method MethodInfo, test TestCase) error
	After(ctx context.Context, method MethodInfo, test TestCase) error
}

// NamedHook can be implemented by a LifecycleHook to control the name it is reported under.
// Otherwise the name of its concrete type is used.
type NamedHook interface {
	Name() string
}

// HookName returns the display name of a hook.
func HookName(hook LifecycleHook) string {
	if hook == nil {
		return "<nil>"
	}
	if n, ok := hook.(NamedHook); ok {
		return n.Name()
	}
	t := reflect.TypeOf(hook)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// HookFuncs adapts a pair of functions to LifecycleHook. Either function may be nil.
type HookFuncs struct {
	Label      string
	BeforeFunc func(ctx context.Context, method MethodInfo, test TestCase) error
	AfterFunc  func(ctx context.Context, method MethodInfo, test TestCase) error
}

func (h HookFuncs) Name() string {
	if h.Label == "" {
		return "HookFuncs"
	}
	return h.Label
}

func (h HookFuncs) Before(ctx context.Context, method MethodInfo, test TestCase) error {
	if h.BeforeFunc == nil {
		return nil
	}
	return h.BeforeFunc(ctx, method, test)
}

func (h HookFuncs) After(ctx context.Context, method MethodInfo, test TestCase) error {
	if h.AfterFunc == nil {
		return nil
	}
	return h.AfterFunc(ctx, method, test)
}

// RunBeforeHooks calls Before on each hook in order.
//
// A BeforeTestStarting message is queued first; if the bus rejects it, cancellation is
// signaled and that hook is not run. Otherwise Before is called, and BeforeTestFinished is
// queued whatever the result. A failing Before is recorded in the aggregator and stops the
// remaining hooks, as does a signaled cancellation.
//
// Afterward the context's hook list holds only the hooks whose Before succeeded, in order.
func (c *RunnerContext) RunBeforeHooks(ctx context.Context) {
	executed := make([]LifecycleHook, 0, len(c.hooks))
	for _, hook := range c.hooks {
		name := HookName(hook)
		if !c.queueMessage(BeforeTestStarting{TestMessage: newTestMessage(c.test), AttributeName: name}) {
			c.logger.Printf("Bus rejected start of Before for %s", name)
		} else {
			c.logger.Printf("Running Before for %s", name)
			ok := c.aggregator.RunContext(ctx, func(ctx context.Context) error {
				if hook == nil {
					return ErrNilHook
				}
				return hook.Before(ctx, c.method, c.test)
			})
			if ok {
				executed = append(executed, hook)
			} else {
				c.logger.Printf("Before for %s failed", name)
			}
			c.queueMessage(BeforeTestFinished{TestMessage: newTestMessage(c.test), AttributeName: name})
			if !ok {
				break
			}
		}
		if c.cancellation.IsSignaled() {
			break
		}
	}
	c.hooks = executed
}

// RunAfterHooks calls After on every hook that is still in the context's hook list, in reverse
// order. Each hook's After is attempted even if an earlier one failed or cancellation has been
// signaled; failures are recorded in the aggregator. Rejected messages only signal
// cancellation.
func (c *RunnerContext) RunAfterHooks(ctx context.Context) {
	for i := len(c.hooks) - 1; i >= 0; i-- {
		hook := c.hooks[i]
		name := HookName(hook)
		c.queueMessage(AfterTestStarting{TestMessage: newTestMessage(c.test), AttributeName: name})
		c.logger.Printf("Running After for %s", name)
		if !c.aggregator.RunContext(ctx, func(ctx context.Context) error {
			if hook == nil {
				return ErrNilHook
			}
			return hook.After(ctx, c.method, c.test)
		}) {
			c.logger.Printf("After for %s failed", name)
		}
		c.queueMessage(AfterTestFinished{TestMessage: newTestMessage(c.test), AttributeName: name})
	}
}

func (c *RunnerContext) queueMessage(message interface{}) bool {
	if c.messageBus.QueueMessage(message) {
		return true
	}
	c.cancellation.Signal()
	return false
}
