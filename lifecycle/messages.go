package lifecycle

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestMessage holds the identity fields carried by every per-test message.
type TestMessage struct {
	AssemblyUniqueID       string                 `json:"assemblyUniqueID"`
	TestCollectionUniqueID string                 `json:"testCollectionUniqueID"`
	TestClassUniqueID      ldvalue.OptionalString `json:"testClassUniqueID"`
	TestMethodUniqueID     ldvalue.OptionalString `json:"testMethodUniqueID"`
	TestCaseUniqueID       string                 `json:"testCaseUniqueID"`
	TestUniqueID           string                 `json:"testUniqueID"`
}

func newTestMessage(tc TestCase) TestMessage {
	return TestMessage{
		AssemblyUniqueID:       tc.AssemblyID,
		TestCollectionUniqueID: tc.CollectionID,
		TestClassUniqueID:      tc.ClassID,
		TestMethodUniqueID:     tc.MethodID,
		TestCaseUniqueID:       tc.TestCaseID,
		TestUniqueID:           tc.TestID,
	}
}

// BeforeTestStarting is sent before a hook's Before method is called.
type BeforeTestStarting struct {
	TestMessage
	AttributeName string `json:"attributeName"`
}

// BeforeTestFinished is sent after a hook's Before method returns, whether or not it failed.
type BeforeTestFinished struct {
	TestMessage
	AttributeName string `json:"attributeName"`
}

// AfterTestStarting is sent before a hook's After method is called.
type AfterTestStarting struct {
	TestMessage
	AttributeName string `json:"attributeName"`
}

// AfterTestFinished is sent after a hook's After method returns, whether or not it failed.
type AfterTestFinished struct {
	TestMessage
	AttributeName string `json:"attributeName"`
}

func (BeforeTestStarting) MessageType() string { return "beforeTestStarting" }
func (BeforeTestFinished) MessageType() string { return "beforeTestFinished" }
func (AfterTestStarting) MessageType() string  { return "afterTestStarting" }
func (AfterTestFinished) MessageType() string  { return "afterTestFinished" }
