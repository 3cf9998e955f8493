package lifecycle

import (
	"github.com/harnesskit/lifecycle-harness/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestCase is the identity and skip configuration of one test. It is never modified while
// the test is running.
type TestCase struct {
	AssemblyID   string
	CollectionID string
	ClassID      ldvalue.OptionalString
	MethodID     ldvalue.OptionalString
	TestCaseID   string
	TestID       string

	DisplayName string
	ClassName   string
	MethodName  string

	// SkipReason is the statically declared skip reason, if any.
	SkipReason ldvalue.OptionalString
	// SkipUnless names a static bool property; the test is skipped if it returns false.
	SkipUnless string
	// SkipWhen names a static bool property; the test is skipped if it returns true.
	SkipWhen string
	// SkipType, if set, is the type that the property is looked up on instead of ClassName.
	SkipType string
}

// NewTestCase creates a TestCase whose unique IDs are derived from its names.
func NewTestCase(assemblyName, collectionName, className, methodName, displayName string) TestCase {
	tc := TestCase{
		AssemblyID:   framework.UniqueID(assemblyName),
		CollectionID: framework.UniqueID(assemblyName, collectionName),
		DisplayName:  displayName,
		ClassName:    className,
		MethodName:   methodName,
	}
	if className != "" {
		tc.ClassID = ldvalue.NewOptionalString(framework.UniqueID(assemblyName, collectionName, className))
		if methodName != "" {
			tc.MethodID = ldvalue.NewOptionalString(framework.UniqueID(assemblyName, collectionName, className, methodName))
		}
	}
	tc.TestCaseID = framework.UniqueID(assemblyName, collectionName, className, methodName)
	tc.TestID = framework.UniqueID(tc.TestCaseID, displayName)
	return tc
}

// WithSkip returns a copy of the test case with a static skip reason.
func (tc TestCase) WithSkip(reason string) TestCase {
	tc.SkipReason = ldvalue.NewOptionalString(reason)
	return tc
}

// WithSkipUnless returns a copy of the test case that is skipped unless the named property
// returns true.
func (tc TestCase) WithSkipUnless(propertyName string) TestCase {
	tc.SkipUnless = propertyName
	return tc
}

// WithSkipWhen returns a copy of the test case that is skipped when the named property returns
// true.
func (tc TestCase) WithSkipWhen(propertyName string) TestCase {
	tc.SkipWhen = propertyName
	return tc
}

// WithSkipType returns a copy of the test case that looks up its skip property on typeName.
func (tc TestCase) WithSkipType(typeName string) TestCase {
	tc.SkipType = typeName
	return tc
}

// HasDynamicSkip returns true if a SkipUnless or SkipWhen condition is configured.
func (tc TestCase) HasDynamicSkip() bool {
	return tc.SkipUnless != "" || tc.SkipWhen != ""
}

// MethodInfo describes the test method that hooks are run around.
type MethodInfo struct {
	Name      string
	ClassName string
	Arguments []interface{}
}

// ExplicitOption controls whether tests marked as explicit are run. The runner context only
// carries it.
type ExplicitOption int

const (
	ExplicitOff ExplicitOption = iota
	ExplicitOn
	ExplicitOnly
)

func (o ExplicitOption) String() string {
	switch o {
	case ExplicitOn:
		return "on"
	case ExplicitOnly:
		return "only"
	default:
		return "off"
	}
}
