package lifecycle

import (
	"github.com/harnesskit/lifecycle-harness/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RunnerContextConfig holds everything a RunnerContext is created from.
//
// MessageBus, Aggregator and Cancellation are shared with the rest of the test run; the
// context uses them but does not own them. A nil Aggregator or Cancellation is replaced with a
// fresh one, a nil Properties with an empty registry, and a nil Logger with a null logger.
// MessageBus is required.
type RunnerContextConfig struct {
	Test                 TestCase
	Method               MethodInfo
	MessageBus           framework.MessageBus
	Aggregator           *framework.ExceptionAggregator
	Cancellation         *framework.CancellationController
	ExplicitOption       ExplicitOption
	ConstructorArguments []interface{}
	TestMethodArguments  []interface{}
	Hooks                []LifecycleHook
	Properties           PropertyResolver
	Logger               framework.Logger
}

// RunnerContext holds the state of a single test execution. It belongs to one test and must
// not be used from more than one goroutine at a time.
type RunnerContext struct {
	test                 TestCase
	method               MethodInfo
	messageBus           framework.MessageBus
	aggregator           *framework.ExceptionAggregator
	cancellation         *framework.CancellationController
	explicitOption       ExplicitOption
	constructorArguments []interface{}
	testMethodArguments  []interface{}
	hooks                []LifecycleHook
	properties           PropertyResolver
	logger               framework.Logger

	skipResolved bool
	skipReason   ldvalue.OptionalString
}

func NewRunnerContext(config RunnerContextConfig) *RunnerContext {
	c := &RunnerContext{
		test:                 config.Test,
		method:               config.Method,
		messageBus:           config.MessageBus,
		aggregator:           config.Aggregator,
		cancellation:         config.Cancellation,
		explicitOption:       config.ExplicitOption,
		constructorArguments: config.ConstructorArguments,
		testMethodArguments:  config.TestMethodArguments,
		hooks:                append([]LifecycleHook(nil), config.Hooks...),
		properties:           config.Properties,
		logger:               config.Logger,
	}
	if c.aggregator == nil {
		c.aggregator = framework.NewExceptionAggregator()
	}
	if c.cancellation == nil {
		c.cancellation = framework.NewCancellationController(nil)
	}
	if c.properties == nil {
		c.properties = NewPropertyRegistry()
	}
	if c.logger == nil {
		c.logger = framework.NullLogger()
	}
	if c.method.Name == "" {
		c.method = MethodInfo{Name: c.test.MethodName, ClassName: c.test.ClassName, Arguments: c.testMethodArguments}
	}
	return c
}

func (c *RunnerContext) Test() TestCase { return c.test }

func (c *RunnerContext) Method() MethodInfo { return c.method }

// Hooks returns the current hook list. After RunBeforeHooks this is only the hooks whose
// Before succeeded.
func (c *RunnerContext) Hooks() []LifecycleHook {
	return append([]LifecycleHook(nil), c.hooks...)
}

func (c *RunnerContext) ExplicitOption() ExplicitOption { return c.explicitOption }

func (c *RunnerContext) ConstructorArguments() []interface{} { return c.constructorArguments }

func (c *RunnerContext) TestMethodArguments() []interface{} { return c.testMethodArguments }

func (c *RunnerContext) Aggregator() *framework.ExceptionAggregator { return c.aggregator }

func (c *RunnerContext) Cancellation() *framework.CancellationController { return c.cancellation }
