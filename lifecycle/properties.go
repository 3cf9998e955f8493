package lifecycle

import (
	"reflect"
	"sync"
)

// PropertyLookup is the outcome of looking up a static bool property.
type PropertyLookup int

const (
	PropertyFound PropertyLookup = iota
	PropertyNotFound
	PropertyNotReadable
	PropertyWrongType
)

func (l PropertyLookup) String() string {
	switch l {
	case PropertyFound:
		return "found"
	case PropertyNotFound:
		return "not found"
	case PropertyNotReadable:
		return "not readable"
	case PropertyWrongType:
		return "wrong type"
	default:
		return "unknown"
	}
}

// PropertyResolver finds public static bool properties by type and name. The getter is only
// meaningful if the lookup result is PropertyFound.
type PropertyResolver interface {
	FindStaticBoolProperty(typeName, name string) (func() bool, PropertyLookup)
}

// PropertyRegistry is a PropertyResolver over explicitly registered getters.
//
// A getter of type func() bool, or any no-argument function returning a bool-kinded type, is
// found. A nil getter, a non-function value, or a function that takes arguments is a property
// with no readable getter. A no-argument function returning anything else has the wrong type.
type PropertyRegistry struct {
	properties map[string]map[string]interface{}
	lock       sync.RWMutex
}

func NewPropertyRegistry() *PropertyRegistry {
	return &PropertyRegistry{properties: make(map[string]map[string]interface{})}
}

// Register adds or replaces the getter for a property.
func (r *PropertyRegistry) Register(typeName, name string, getter interface{}) *PropertyRegistry {
	r.lock.Lock()
	defer r.lock.Unlock()
	props := r.properties[typeName]
	if props == nil {
		props = make(map[string]interface{})
		r.properties[typeName] = props
	}
	props[name] = getter
	return r
}

func (r *PropertyRegistry) FindStaticBoolProperty(typeName, name string) (func() bool, PropertyLookup) {
	r.lock.RLock()
	getter, ok := r.properties[typeName][name]
	r.lock.RUnlock()
	if !ok {
		return nil, PropertyNotFound
	}
	if g, ok := getter.(func() bool); ok && g != nil {
		return g, PropertyFound
	}
	if getter == nil {
		return nil, PropertyNotReadable
	}
	v := reflect.ValueOf(getter)
	if v.Kind() != reflect.Func || v.IsNil() || v.Type().NumIn() != 0 {
		return nil, PropertyNotReadable
	}
	if v.Type().NumOut() != 1 || v.Type().Out(0).Kind() != reflect.Bool {
		return nil, PropertyWrongType
	}
	return func() bool { return v.Call(nil)[0].Bool() }, PropertyFound
}
