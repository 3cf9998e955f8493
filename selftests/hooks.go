package selftests

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/harnesskit/lifecycle-harness/lifecycle"
)

// tempDirHook creates a scratch directory before the test and removes it afterward.
type tempDirHook struct {
	dir string
}

func (h *tempDirHook) Before(ctx context.Context, method lifecycle.MethodInfo, test lifecycle.TestCase) error {
	dir, err := ioutil.TempDir("", "selftest-")
	if err != nil {
		return fmt.Errorf("could not create scratch directory: %w", err)
	}
	h.dir = dir
	return nil
}

func (h *tempDirHook) After(ctx context.Context, method lifecycle.MethodInfo, test lifecycle.TestCase) error {
	dir := h.dir
	h.dir = ""
	return os.RemoveAll(dir)
}

// envVarHook sets an environment variable for the duration of the test and then restores the
// previous value.
type envVarHook struct {
	name     string
	value    string
	previous *string
}

func (h *envVarHook) Name() string { return "envVarHook(" + h.name + ")" }

func (h *envVarHook) Before(ctx context.Context, method lifecycle.MethodInfo, test lifecycle.TestCase) error {
	if old, ok := os.LookupEnv(h.name); ok {
		h.previous = &old
	} else {
		h.previous = nil
	}
	return os.Setenv(h.name, h.value)
}

func (h *envVarHook) After(ctx context.Context, method lifecycle.MethodInfo, test lifecycle.TestCase) error {
	if h.previous != nil {
		return os.Setenv(h.name, *h.previous)
	}
	return os.Unsetenv(h.name)
}
