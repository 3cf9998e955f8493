package lifecycle

import (
	"errors"
	"strings"

	"github.com/harnesskit/lifecycle-harness/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DynamicSkipToken marks an error message as carrying a skip reason rather than a failure.
// Whatever follows the token is the reason.
const DynamicSkipToken = "$XunitDynamicSkip$"

// DynamicSkipError returns an error that, if returned by a test body, causes the test to be
// reported as skipped with the given reason.
func DynamicSkipError(reason string) error {
	return errors.New(DynamicSkipToken + reason)
}

// DynamicSkipReason returns the skip reason carried by err, if its message starts with
// DynamicSkipToken. The error's type does not matter.
func DynamicSkipReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	message := err.Error()
	if !strings.HasPrefix(message, DynamicSkipToken) {
		return "", false
	}
	return strings.TrimPrefix(message, DynamicSkipToken), true
}

// SkipReason returns the reason this test should be skipped, or an undefined value if it
// should not be skipped. It is computed on the first call and the same result is returned
// afterward.
//
// Without a SkipUnless or SkipWhen condition this is just the static skip reason. With one,
// the named property is evaluated and the static reason applies only if the condition calls
// for a skip. Configuration problems are recorded in the aggregator, which fails the test,
// and the result is then "not skipped".
func (c *RunnerContext) SkipReason() ldvalue.OptionalString {
	if !c.skipResolved {
		c.skipReason = c.resolveSkipReason()
		c.skipResolved = true
	}
	return c.skipReason
}

// SkipReasonFor is like SkipReason, but first checks whether err carries a dynamic skip
// reason. That check is never cached.
func (c *RunnerContext) SkipReasonFor(err error) ldvalue.OptionalString {
	if reason, ok := DynamicSkipReason(err); ok {
		return ldvalue.NewOptionalString(reason)
	}
	return c.SkipReason()
}

func (c *RunnerContext) resolveSkipReason() ldvalue.OptionalString {
	test := c.test
	if !test.HasDynamicSkip() {
		return test.SkipReason
	}
	if test.SkipUnless != "" && test.SkipWhen != "" {
		c.aggregator.Add(ErrConflictingSkipConditions)
		return ldvalue.OptionalString{}
	}

	typeName := test.SkipType
	if typeName == "" {
		typeName = test.ClassName
	}
	propertyName := test.SkipUnless
	if propertyName == "" {
		propertyName = test.SkipWhen
	}

	getter, lookup := c.properties.FindStaticBoolProperty(typeName, propertyName)
	if lookup != PropertyFound {
		c.aggregator.Add(PropertyLookupError{TypeName: typeName, PropertyName: propertyName, Lookup: lookup})
		return ldvalue.OptionalString{}
	}

	value, ok := framework.RunValue(c.aggregator, func() (bool, error) { return getter(), nil })
	if !ok {
		return ldvalue.OptionalString{}
	}
	c.logger.Printf("Skip property %s.%s returned %t", typeName, propertyName, value)

	if (test.SkipUnless != "" && !value) || (test.SkipWhen != "" && value) {
		return test.SkipReason
	}
	return ldvalue.OptionalString{}
}
