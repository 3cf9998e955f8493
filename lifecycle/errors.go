package lifecycle

import (
	"errors"
	"fmt"
)

// ErrConflictingSkipConditions is recorded when a test sets both SkipUnless and SkipWhen.
var ErrConflictingSkipConditions = errors.New(
	"tests may only set one dynamic skip property; set SkipUnless or SkipWhen, not both")

// ErrNilHook is recorded in place of calling a hook whose entry in the hook list is nil.
var ErrNilHook = errors.New("lifecycle hook is nil")

// PropertyLookupError is recorded when the property named by SkipUnless or SkipWhen cannot be
// used.
type PropertyLookupError struct {
	TypeName     string
	PropertyName string
	Lookup       PropertyLookup
}

func (e PropertyLookupError) Error() string {
	switch e.Lookup {
	case PropertyNotReadable:
		return fmt.Sprintf("public static property '%s' on type '%s' does not have a public getter",
			e.PropertyName, e.TypeName)
	case PropertyWrongType:
		return fmt.Sprintf("public static property '%s' on type '%s' must return bool",
			e.PropertyName, e.TypeName)
	default:
		return fmt.Sprintf("unable to find public static property '%s' on type '%s'",
			e.PropertyName, e.TypeName)
	}
}
