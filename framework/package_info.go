// Package framework contains the domain-neutral infrastructure of the test harness: logging,
// result accumulation, test filtering, and the shared collaborators that every test in a run
// is handed.
//
// The general model is:
//
// 1. Errors that happen while running a test are not returned to the caller. They are
// collected in an ExceptionAggregator, which the runner inspects afterward to decide whether
// the test passed.
//
// 2. Progress is reported as messages on a MessageBus. A bus may reject a message, which is
// the signal for producers to stop starting new work.
//
// 3. A CancellationController is signaled when that happens. It never resets.
//
// The code that knows how an individual test is set up, executed and torn down lives in the
// lifecycle package, on top of these pieces.
package framework
