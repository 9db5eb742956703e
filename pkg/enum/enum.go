package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type name to the set of values declared with New.
var registry = map[string]any{}

type valueSet[T comparable] struct {
	byName map[string]T
}

// New declares value as a member of its enum type and returns it, so status
// constants can register themselves at their declaration site.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	name := v.Type().Name()
	if _, ok := registry[name]; !ok {
		registry[name] = valueSet[T]{byName: make(map[string]T)}
	}

	registry[name].(valueSet[T]).byName[v.String()] = value
	return value
}

// ToEnum resolves a raw string into a declared member of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	set, ok := registry[reflect.TypeOf(zero).Name()]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := set.(valueSet[T]).byName[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}
