// Package lifecycle runs a single test through its before/after hooks and decides, while the
// test is executing, whether it should be reported as skipped.
//
// A RunnerContext is created for each test execution. Its RunBeforeHooks and RunAfterHooks
// methods run the test's LifecycleHooks in order and in reverse order respectively, reporting
// each step on the framework.MessageBus. Its SkipReason and SkipReasonFor methods implement
// dynamic skipping, either through a named boolean property looked up with a
// PropertyResolver or through an error whose message starts with DynamicSkipToken.
//
// TestRunner and Suite sit on top of that and play the role of the execution loop: they run
// the test body between the two hook phases and report the outcome through a
// framework.TestLogger.
package lifecycle
