package framework

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/multierr"
)

// PanicError is recorded in place of a panic that was recovered while running a function
// through an ExceptionAggregator.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("unexpected panic: %+v\n%s", e.Value, string(e.Stack))
}

// ExceptionAggregator collects errors from operations without returning them to the caller
// right away. The test runner inspects it after the fact to decide whether a test failed.
//
// It is safe for concurrent use, since one aggregator may be shared by everything that runs
// on behalf of a single test.
type ExceptionAggregator struct {
	errors []error
	lock   sync.Mutex
}

// NewExceptionAggregator creates an empty aggregator.
func NewExceptionAggregator() *ExceptionAggregator {
	return &ExceptionAggregator{}
}

// Run calls fn and records its error, or the panic it raised, if any. It returns true if fn
// completed without an error.
func (a *ExceptionAggregator) Run(fn func() error) bool {
	err := CatchPanic(fn)
	a.Add(err)
	return err == nil
}

// RunContext is the variant of Run for operations that may block. The context is passed
// through unchanged; if fn gives up because the context was cancelled, whatever error it
// returns is recorded like any other.
func (a *ExceptionAggregator) RunContext(ctx context.Context, fn func(context.Context) error) bool {
	return a.Run(func() error { return fn(ctx) })
}

// RunValue calls fn through the aggregator and returns its result. If fn failed, the error is
// recorded and the second return value is false.
func RunValue[T any](a *ExceptionAggregator, fn func() (T, error)) (T, bool) {
	var value T
	err := CatchPanic(func() error {
		v, err := fn()
		if err == nil {
			value = v
		}
		return err
	})
	if err != nil {
		a.Add(err)
		var zero T
		return zero, false
	}
	return value, true
}

// Add records an error directly. Nil errors are ignored.
func (a *ExceptionAggregator) Add(err error) {
	if err == nil {
		return
	}
	a.lock.Lock()
	a.errors = append(a.errors, err)
	a.lock.Unlock()
}

// HasErrors returns true if at least one error has been recorded.
func (a *ExceptionAggregator) HasErrors() bool {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.errors) != 0
}

// Errors returns a copy of the recorded errors in the order they were added.
func (a *ExceptionAggregator) Errors() []error {
	a.lock.Lock()
	ret := append([]error(nil), a.errors...)
	a.lock.Unlock()
	return ret
}

// ToError combines all recorded errors into one, or returns nil if there were none.
func (a *ExceptionAggregator) ToError() error {
	return multierr.Combine(a.Errors()...)
}

// Clear discards all recorded errors.
func (a *ExceptionAggregator) Clear() {
	a.lock.Lock()
	a.errors = nil
	a.lock.Unlock()
}

// CatchPanic calls fn and returns its error. If fn panics, the panic is returned as a
// PanicError instead.
func CatchPanic(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
