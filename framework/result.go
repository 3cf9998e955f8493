package framework

import (
	"fmt"
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID TestID
	Errors []error
	// Err combines Errors into a single error; it is nil if the test did not fail.
	Err        error
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Add records the result of one test.
func (r *Results) Add(result TestResult) {
	r.Tests = append(r.Tests, result)
	switch {
	case result.Skipped:
		r.Skipped = append(r.Skipped, result)
	case len(result.Errors) != 0:
		r.Failures = append(r.Failures, result)
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID with the specified name appended to the path.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
