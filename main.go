package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harnesskit/lifecycle-harness/framework"
	"github.com/harnesskit/lifecycle-harness/selftests"

	"github.com/sirupsen/logrus"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	debugLogger := logrus.New()
	debugLogger.SetOutput(os.Stdout)
	debugLogger.SetLevel(logrus.InfoLevel)
	if params.debugAll {
		debugLogger.SetLevel(logrus.DebugLevel)
	}

	var bus framework.MessageBus
	if params.reportURL != "" {
		bus = framework.NewRemoteMessageSink(params.reportURL, nil, debugLogger)
	} else {
		queue := framework.NewMessageQueue(params.queueSize)
		defer queue.Close()
		go func() {
			for m := range queue.C {
				debugLogger.Debugf("message: %+v", m)
			}
		}()
		bus = queue
	}

	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	env := selftests.Environment{IsCI: params.ci}
	results := selftests.RunTestSuite(context.Background(), bus, env, params.filters.AsFilter, testLogger)

	fmt.Println()
	printResults(os.Stdout, results)
	if !results.OK() {
		fmt.Printf("\nTo rerun the failed tests:\n  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
