package selftests

import (
	"context"
	"errors"
	"os"

	"github.com/harnesskit/lifecycle-harness/framework"
	"github.com/harnesskit/lifecycle-harness/lifecycle"
)

const (
	assemblyName   = "selftests"
	collectionName = "default"
	suiteName      = "selftests"

	envVarName = "LIFECYCLE_HARNESS_SELFTEST"
)

// NewSuite builds the suite.
func NewSuite() *lifecycle.Suite {
	s := lifecycle.NewSuite(suiteName)
	addHookTests(s)
	addSkipTests(s)
	return s
}

// RunTestSuite runs the suite with a TestRunner whose skip conditions come from env.
func RunTestSuite(
	ctx context.Context,
	bus framework.MessageBus,
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	runner := lifecycle.NewTestRunner(bus, env.Properties(), testLogger)
	runner.Filter = filter
	return NewSuite().Run(ctx, runner)
}

func testCase(className, methodName string) lifecycle.TestCase {
	return lifecycle.NewTestCase(assemblyName, collectionName, className, methodName, className+"."+methodName)
}

func addHookTests(s *lifecycle.Suite) {
	scratch := &tempDirHook{}
	s.Add("hooks/scratch directory exists during test", lifecycle.TestDefinition{
		Test:  testCase("HookTests", "ScratchDirectory"),
		Hooks: []lifecycle.LifecycleHook{scratch},
		Body: func(ctx context.Context) error {
			info, err := os.Stat(scratch.dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return errors.New("scratch path is not a directory")
			}
			return nil
		},
	})

	envHook := &envVarHook{name: envVarName, value: "1"}
	s.Add("hooks/environment variable is set during test", lifecycle.TestDefinition{
		Test:  testCase("HookTests", "EnvironmentVariable"),
		Hooks: []lifecycle.LifecycleHook{scratch, envHook},
		Body: func(ctx context.Context) error {
			if os.Getenv(envVarName) != "1" {
				return errors.New(envVarName + " was not set by the hook")
			}
			return nil
		},
	})
}

func addSkipTests(s *lifecycle.Suite) {
	s.Add("skips/static", lifecycle.TestDefinition{
		Test: testCase("SkipTests", "Static").WithSkip("demonstrates a static skip"),
	})

	s.Add("skips/only on CI", lifecycle.TestDefinition{
		Test: testCase("SkipTests", "OnlyOnCI").
			WithSkip("only runs on CI").
			WithSkipUnless("IsCI").
			WithSkipType(EnvironmentType),
		Body: func(ctx context.Context) error { return nil },
	})

	s.Add("skips/never on CI", lifecycle.TestDefinition{
		Test: testCase("SkipTests", "NeverOnCI").
			WithSkip("does not run on CI").
			WithSkipWhen("IsCI").
			WithSkipType(EnvironmentType),
		Body: func(ctx context.Context) error { return nil },
	})

	s.Add("skips/decided by test body", lifecycle.TestDefinition{
		Test: testCase("SkipTests", "DecidedByBody"),
		Body: func(ctx context.Context) error {
			return lifecycle.DynamicSkipError("skipped at run time")
		},
	})
}
