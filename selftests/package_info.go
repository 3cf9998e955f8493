// Package selftests contains a small suite of tests that exercises the harness itself: hooks
// that prepare and clean up fixtures, and each of the ways a test can be skipped.
//
// The lifecycle machinery lives in the lower-level lifecycle package; this package only
// defines tests on top of it.
package selftests
