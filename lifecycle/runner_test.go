package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harnesskit/lifecycle-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpyRunner(bus framework.MessageBus, properties PropertyResolver) (*TestRunner, *spyTestLogger) {
	logger := &spyTestLogger{}
	return NewTestRunner(bus, properties, logger), logger
}

func testID(name string) framework.TestID {
	return framework.TestID{Path: []string{name}}
}

func TestRunTestPasses(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(makeHooks(&log, "a", "b")),
		Body: func(context.Context) error {
			log.add("body")
			return nil
		},
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.Equal(t, []string{"before a", "before b", "body", "after b", "after a"}, log.calls)
	assert.False(t, result.Skipped)
	assert.Len(t, result.Errors, 0)
	assert.Equal(t, []string{"started t", "passed t"}, logger.events)
	assert.NotEmpty(t, logger.output, "debug output should be captured")
}

func TestRunTestBodyErrorFails(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	bodyErr := errors.New("assertion failed")
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(makeHooks(&log, "a")),
		Body:  func(context.Context) error { return bodyErr },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.Equal(t, []error{bodyErr}, result.Errors)
	assert.Equal(t, []error{bodyErr}, logger.errors)
	assert.Equal(t, []string{"started t", "failed t"}, logger.events)
	assert.Equal(t, []string{"before a", "after a"}, log.calls)
}

func TestRunTestBodyPanicFails(t *testing.T) {
	runner, _ := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test: makeTestCase(),
		Body: func(context.Context) error { panic("boom") },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	require.Len(t, result.Errors, 1)
	var pe framework.PanicError
	assert.True(t, errors.As(result.Errors[0], &pe))
}

func TestRunTestBeforeHookFailureSkipsBody(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	hooks := makeHooks(&log, "a", "b", "c")
	hooks[1].beforeErr = errors.New("setup failed")
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(hooks),
		Body: func(context.Context) error {
			log.add("body")
			return nil
		},
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.Equal(t, []string{"before a", "before b", "after a"}, log.calls)
	assert.Equal(t, []error{hooks[1].beforeErr}, result.Errors)
	assert.Equal(t, []string{"started t", "failed t"}, logger.events)
}

func TestRunTestStaticSkipRunsNothing(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test:  makeTestCase().WithSkip("not ready"),
		Hooks: asLifecycleHooks(makeHooks(&log, "a")),
		Body: func(context.Context) error {
			log.add("body")
			return nil
		},
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.Len(t, log.calls, 0)
	assert.True(t, result.Skipped)
	assert.Equal(t, "not ready", result.SkipReason)
	assert.Equal(t, []string{"started t", "skipped t (not ready)"}, logger.events)
}

func TestRunTestDynamicSkipByProperty(t *testing.T) {
	registry := NewPropertyRegistry().Register("MyClass", "IsCI", func() bool { return true })

	t.Run("skipped", func(t *testing.T) {
		var log callLog
		runner, _ := newSpyRunner(nil, registry)
		def := TestDefinition{
			Test:  makeTestCase().WithSkip("not on CI").WithSkipWhen("IsCI"),
			Hooks: asLifecycleHooks(makeHooks(&log, "a")),
			Body:  func(context.Context) error { log.add("body"); return nil },
		}
		result := runner.RunTest(context.Background(), testID("t"), def)
		assert.True(t, result.Skipped)
		assert.Equal(t, "not on CI", result.SkipReason)
		assert.Len(t, log.calls, 0)
	})

	t.Run("not skipped", func(t *testing.T) {
		var log callLog
		runner, _ := newSpyRunner(nil, registry)
		def := TestDefinition{
			Test:  makeTestCase().WithSkip("only on CI").WithSkipUnless("IsCI"),
			Hooks: asLifecycleHooks(makeHooks(&log, "a")),
			Body:  func(context.Context) error { log.add("body"); return nil },
		}
		result := runner.RunTest(context.Background(), testID("t"), def)
		assert.False(t, result.Skipped)
		assert.Len(t, result.Errors, 0)
		assert.Equal(t, []string{"before a", "body", "after a"}, log.calls)
	})
}

func TestRunTestSkipConfigurationErrorFails(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test:  makeTestCase().WithSkip("x").WithSkipUnless("Missing"),
		Hooks: asLifecycleHooks(makeHooks(&log, "a")),
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.False(t, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.IsType(t, PropertyLookupError{}, result.Errors[0])
	assert.Len(t, log.calls, 0)
	assert.Equal(t, []string{"started t", "failed t"}, logger.events)
}

func TestRunTestDynamicSkipBySentinelError(t *testing.T) {
	var log callLog
	runner, logger := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(makeHooks(&log, "a")),
		Body:  func(context.Context) error { return DynamicSkipError("Flaky on CI") },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.True(t, result.Skipped)
	assert.Equal(t, "Flaky on CI", result.SkipReason)
	assert.Len(t, result.Errors, 0)
	assert.Equal(t, []string{"before a", "after a"}, log.calls)
	assert.Equal(t, []string{"started t", "skipped t (Flaky on CI)"}, logger.events)
}

func TestRunTestSentinelSkipWithFailingCleanupFails(t *testing.T) {
	var log callLog
	runner, _ := newSpyRunner(nil, nil)
	hooks := makeHooks(&log, "a")
	hooks[0].afterErr = errors.New("cleanup failed")
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(hooks),
		Body:  func(context.Context) error { return DynamicSkipError("later") },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.False(t, result.Skipped)
	assert.Equal(t, []error{hooks[0].afterErr}, result.Errors)
}

func TestRunTestFiltered(t *testing.T) {
	runner, logger := newSpyRunner(nil, nil)
	runner.Filter = func(id framework.TestID) bool { return false }

	result := runner.RunTest(context.Background(), testID("t"), TestDefinition{Test: makeTestCase()})

	assert.True(t, result.Skipped)
	assert.Equal(t, []string{"started t", "skipped t (excluded by filter parameters)"}, logger.events)
}

func TestSuiteStopsStartingTestsAfterBusRejection(t *testing.T) {
	var log callLog
	bus := framework.NewMessageRecorder().RejectAfter(1)
	runner, logger := newSpyRunner(bus, nil)
	suite := NewSuite("suite").
		Add("first", TestDefinition{
			Test:  makeTestCase(),
			Hooks: asLifecycleHooks(makeHooks(&log, "a", "b")),
			Body:  func(context.Context) error { log.add("first body"); return nil },
		}).
		Add("second", TestDefinition{
			Test:  makeTestCase(),
			Hooks: asLifecycleHooks(makeHooks(&log, "c")),
			Body:  func(context.Context) error { log.add("second body"); return nil },
		})

	results := suite.Run(context.Background(), runner)

	assert.Equal(t, []string{"before a", "after a"}, log.calls)
	require.Len(t, results.Tests, 2)
	assert.True(t, results.OK())
	assert.Len(t, results.Skipped, 2)
	assert.Equal(t, "test run cancelled", results.Tests[0].SkipReason)
	assert.Equal(t, []string{
		"started suite/first", "skipped suite/first (test run cancelled)",
		"started suite/second", "skipped suite/second (test run cancelled)",
	}, logger.events)
}

func TestSuiteCollectsResults(t *testing.T) {
	runner, _ := newSpyRunner(framework.NewMessageRecorder(), nil)
	suite := NewSuite("s").
		Add("pass", TestDefinition{Test: makeTestCase(), Body: func(context.Context) error { return nil }}).
		Add("fail", TestDefinition{Test: makeTestCase(), Body: func(context.Context) error { return errors.New("x") }}).
		Add("skip", TestDefinition{Test: makeTestCase().WithSkip("later")})

	results := suite.Run(context.Background(), runner)

	assert.Len(t, results.Tests, 3)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "s/fail", results.Failures[0].TestID.String())
	require.Len(t, results.Skipped, 1)
	assert.Equal(t, "s/skip", results.Skipped[0].TestID.String())
}

func TestRunTestFailureCombinesErrors(t *testing.T) {
	var log callLog
	runner, _ := newSpyRunner(nil, nil)
	hooks := makeHooks(&log, "a")
	hooks[0].afterErr = errors.New("cleanup failed")
	def := TestDefinition{
		Test:  makeTestCase(),
		Hooks: asLifecycleHooks(hooks),
		Body:  func(context.Context) error { return errors.New("assertion failed") },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "assertion failed")
	assert.Contains(t, result.Err.Error(), "cleanup failed")
	for _, err := range result.Errors {
		assert.ErrorIs(t, result.Err, err)
	}
}

func TestRunTestPassHasNoCombinedError(t *testing.T) {
	runner, _ := newSpyRunner(nil, nil)
	def := TestDefinition{
		Test: makeTestCase(),
		Body: func(context.Context) error { return nil },
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.NoError(t, result.Err)
}

func TestRunTestBodyContextFollowsCancellation(t *testing.T) {
	runner, _ := newSpyRunner(nil, nil)
	var afterCtxErr error
	def := TestDefinition{
		Test: makeTestCase(),
		Hooks: []LifecycleHook{HookFuncs{
			Label: "cleanup",
			AfterFunc: func(ctx context.Context, _ MethodInfo, _ TestCase) error {
				afterCtxErr = ctx.Err()
				return nil
			},
		}},
		Body: func(ctx context.Context) error {
			require.NoError(t, ctx.Err())
			runner.Cancellation.Signal()
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
				return errors.New("body context was not cancelled")
			}
		},
	}

	result := runner.RunTest(context.Background(), testID("t"), def)

	assert.Len(t, result.Errors, 0)
	assert.NoError(t, afterCtxErr, "after hooks should not see the run's cancellation")
}
