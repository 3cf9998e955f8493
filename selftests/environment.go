package selftests

import (
	"os"

	"github.com/harnesskit/lifecycle-harness/lifecycle"
)

// EnvironmentType is the type name that skip conditions in this suite are looked up on.
const EnvironmentType = "Environment"

// Environment describes where the suite is running. Its fields are exposed to skip conditions
// as static properties of EnvironmentType.
type Environment struct {
	IsCI bool
}

// DetectEnvironment reads the environment from the current process.
func DetectEnvironment() Environment {
	return Environment{IsCI: os.Getenv("CI") != ""}
}

// Properties returns the skip condition properties for env.
func (env Environment) Properties() *lifecycle.PropertyRegistry {
	return lifecycle.NewPropertyRegistry().
		Register(EnvironmentType, "IsCI", func() bool { return env.IsCI }).
		Register(EnvironmentType, "IsLocal", func() bool { return !env.IsCI })
}
