package lifecycle

import (
	"context"
	"time"

	"github.com/harnesskit/lifecycle-harness/framework"
)

const (
	filteredSkipReason  = "excluded by filter parameters"
	cancelledSkipReason = "test run cancelled"
)

// TestDefinition is everything needed to run one test.
type TestDefinition struct {
	Test                 TestCase
	Body                 func(ctx context.Context) error
	Hooks                []LifecycleHook
	ExplicitOption       ExplicitOption
	ConstructorArguments []interface{}
	TestMethodArguments  []interface{}
}

// TestRunner runs tests one at a time through their lifecycle. The bus and cancellation
// controller are shared by every test it runs.
type TestRunner struct {
	MessageBus   framework.MessageBus
	Cancellation *framework.CancellationController
	Properties   PropertyResolver
	TestLogger   framework.TestLogger
	Filter       framework.Filter
}

// NewTestRunner creates a TestRunner with a fresh cancellation controller. A nil bus accepts
// and discards everything; a nil test logger discards all output.
func NewTestRunner(bus framework.MessageBus, properties PropertyResolver, testLogger framework.TestLogger) *TestRunner {
	if bus == nil {
		bus = discardBus{}
	}
	if testLogger == nil {
		testLogger = framework.NullTestLogger()
	}
	return &TestRunner{
		MessageBus:   bus,
		Cancellation: framework.NewCancellationController(nil),
		Properties:   properties,
		TestLogger:   testLogger,
	}
}

type discardBus struct{}

func (discardBus) QueueMessage(interface{}) bool { return true }

// RunTest runs a single test and reports its outcome.
//
// A test that is skipped, whether by filter, by a signaled cancellation, or by its skip
// configuration, does not run any hooks. Otherwise the before hooks run, then the body if
// they all succeeded, then the after hooks for whichever before hooks succeeded. If the body
// returns an error carrying DynamicSkipToken the test is reported as skipped, unless some
// other error was recorded along the way.
//
// The before hooks and the body get a context that is also cancelled once r.Cancellation is
// signaled. The after hooks get ctx itself, so cleanup is not cut short by a cancelled run.
func (r *TestRunner) RunTest(ctx context.Context, id framework.TestID, def TestDefinition) framework.TestResult {
	r.TestLogger.TestStarted(id)
	if r.Filter != nil && !r.Filter(id) {
		return r.skipped(id, filteredSkipReason, 0)
	}
	if r.Cancellation.IsSignaled() {
		return r.skipped(id, cancelledSkipReason, 0)
	}

	var debugLogger framework.CapturingLogger
	rc := NewRunnerContext(RunnerContextConfig{
		Test:                 def.Test,
		MessageBus:           r.MessageBus,
		Cancellation:         r.Cancellation,
		ExplicitOption:       def.ExplicitOption,
		ConstructorArguments: def.ConstructorArguments,
		TestMethodArguments:  def.TestMethodArguments,
		Hooks:                def.Hooks,
		Properties:           r.Properties,
		Logger:               &debugLogger,
	})
	aggregator := rc.Aggregator()
	startTime := time.Now()

	if reason := rc.SkipReason(); reason.IsDefined() {
		return r.skipped(id, reason.StringValue(), 0)
	}
	if aggregator.HasErrors() {
		return r.finished(id, aggregator, &debugLogger, time.Since(startTime))
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	stopWatching := context.AfterFunc(r.Cancellation.Context(), stop)
	defer stopWatching()

	rc.RunBeforeHooks(runCtx)

	var skipReason string
	var dynamicallySkipped bool
	switch {
	case aggregator.HasErrors():
	case r.Cancellation.IsSignaled():
		skipReason, dynamicallySkipped = cancelledSkipReason, true
	case def.Body != nil:
		debugLogger.Printf("Running test body")
		bodyErr := framework.CatchPanic(func() error { return def.Body(runCtx) })
		if reason := rc.SkipReasonFor(bodyErr); reason.IsDefined() {
			skipReason, dynamicallySkipped = reason.StringValue(), true
		} else {
			aggregator.Add(bodyErr)
		}
	}

	rc.RunAfterHooks(ctx)

	duration := time.Since(startTime)
	if dynamicallySkipped && !aggregator.HasErrors() {
		return r.skipped(id, skipReason, duration)
	}
	return r.finished(id, aggregator, &debugLogger, duration)
}

func (r *TestRunner) skipped(id framework.TestID, reason string, duration time.Duration) framework.TestResult {
	r.TestLogger.TestSkipped(id, reason)
	return framework.TestResult{TestID: id, Skipped: true, SkipReason: reason, Duration: duration}
}

func (r *TestRunner) finished(
	id framework.TestID,
	aggregator *framework.ExceptionAggregator,
	debugLogger *framework.CapturingLogger,
	duration time.Duration,
) framework.TestResult {
	errs := aggregator.Errors()
	for _, err := range errs {
		r.TestLogger.TestError(id, err)
	}
	r.TestLogger.TestFinished(id, len(errs) != 0, debugLogger.Output())
	return framework.TestResult{TestID: id, Errors: errs, Err: aggregator.ToError(), Duration: duration}
}

// Suite is an ordered collection of named tests.
type Suite struct {
	name  string
	tests []suiteEntry
}

type suiteEntry struct {
	name string
	def  TestDefinition
}

func NewSuite(name string) *Suite {
	return &Suite{name: name}
}

// Add appends a test to the suite.
func (s *Suite) Add(name string, def TestDefinition) *Suite {
	s.tests = append(s.tests, suiteEntry{name: name, def: def})
	return s
}

// Run runs every test in the suite in order. Once cancellation has been signaled the remaining
// tests are reported as skipped.
func (s *Suite) Run(ctx context.Context, runner *TestRunner) framework.Results {
	var results framework.Results
	base := framework.TestID{Path: []string{s.name}}
	for _, entry := range s.tests {
		results.Add(runner.RunTest(ctx, base.Plus(entry.name), entry.def))
	}
	return results
}
