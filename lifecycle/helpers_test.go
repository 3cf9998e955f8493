package lifecycle

import (
	"context"
	"fmt"
	"testing"

	"github.com/harnesskit/lifecycle-harness/framework"

	"github.com/stretchr/testify/require"
)

// callLog records hook calls across all the spy hooks in a test.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type spyHook struct {
	name      string
	log       *callLog
	beforeErr error
	afterErr  error
}

func (h *spyHook) Name() string { return h.name }

func (h *spyHook) Before(ctx context.Context, method MethodInfo, test TestCase) error {
	h.log.add("before %s", h.name)
	return h.beforeErr
}

func (h *spyHook) After(ctx context.Context, method MethodInfo, test TestCase) error {
	h.log.add("after %s", h.name)
	return h.afterErr
}

type unnamedHook struct{}

func (*unnamedHook) Before(context.Context, MethodInfo, TestCase) error { return nil }
func (*unnamedHook) After(context.Context, MethodInfo, TestCase) error  { return nil }

func makeTestCase() TestCase {
	return NewTestCase("assembly", "collection", "MyClass", "MyMethod", "MyClass.MyMethod")
}

func makeHooks(log *callLog, names ...string) []*spyHook {
	var ret []*spyHook
	for _, n := range names {
		ret = append(ret, &spyHook{name: n, log: log})
	}
	return ret
}

func asLifecycleHooks(hooks []*spyHook) []LifecycleHook {
	ret := make([]LifecycleHook, 0, len(hooks))
	for _, h := range hooks {
		ret = append(ret, h)
	}
	return ret
}

func hookNames(hooks []LifecycleHook) []string {
	var ret []string
	for _, h := range hooks {
		ret = append(ret, HookName(h))
	}
	return ret
}

// describeMessages turns phase messages into short strings like "before-start a".
func describeMessages(t *testing.T, messages []interface{}) []string {
	var ret []string
	for _, m := range messages {
		switch m := m.(type) {
		case BeforeTestStarting:
			ret = append(ret, "before-start "+m.AttributeName)
		case BeforeTestFinished:
			ret = append(ret, "before-finish "+m.AttributeName)
		case AfterTestStarting:
			ret = append(ret, "after-start "+m.AttributeName)
		case AfterTestFinished:
			ret = append(ret, "after-finish "+m.AttributeName)
		default:
			require.Fail(t, "unexpected message", "%T", m)
		}
	}
	return ret
}

func newContextWithHooks(bus framework.MessageBus, hooks []*spyHook) *RunnerContext {
	return NewRunnerContext(RunnerContextConfig{
		Test:       makeTestCase(),
		MessageBus: bus,
		Hooks:      asLifecycleHooks(hooks),
	})
}

type spyTestLogger struct {
	events []string
	errors []error
	output framework.CapturedOutput
}

func (l *spyTestLogger) TestStarted(id framework.TestID) {
	l.events = append(l.events, "started "+id.String())
}

func (l *spyTestLogger) TestError(id framework.TestID, err error) {
	l.errors = append(l.errors, err)
}

func (l *spyTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		l.events = append(l.events, "failed "+id.String())
	} else {
		l.events = append(l.events, "passed "+id.String())
	}
	l.output = debugOutput
}

func (l *spyTestLogger) TestSkipped(id framework.TestID, reason string) {
	l.events = append(l.events, fmt.Sprintf("skipped %s (%s)", id, reason))
}
