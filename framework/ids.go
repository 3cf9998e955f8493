package framework

import (
	"strings"

	"github.com/google/uuid"
)

var uniqueIDNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("lifecycle-harness"))

// UniqueID derives a stable identifier from the given name parts. The same parts always
// produce the same ID, so a test keeps its identity across runs.
func UniqueID(parts ...string) string {
	return uuid.NewSHA1(uniqueIDNamespace, []byte(strings.Join(parts, "\x00"))).String()
}
