package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	enumManager = map[reflect.Type]any{}
	lock        sync.RWMutex
)

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
	values   []T
}

// New registers value under name and returns value, so that it can be used to
// declare enum constants as package variables.
func New[T comparable](value T, name string) T {
	lock.Lock()
	defer lock.Unlock()

	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = &enum[T]{toEnum: make(map[string]T), toString: make(map[T]string)}
	}

	e := enumManager[t].(*enum[T])
	if _, ok := e.toString[value]; !ok {
		e.values = append(e.values, value)
	}
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	lock.RLock()
	defer lock.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(*enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func ToString[T comparable](value T) string {
	lock.RLock()
	defer lock.RUnlock()

	e, ok := enumManager[reflect.TypeOf(value)]
	if !ok {
		return ""
	}

	return e.(*enum[T]).toString[value]
}

// Values returns every registered value of T in registration order.
func Values[T comparable]() []T {
	lock.RLock()
	defer lock.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return nil
	}

	values := e.(*enum[T]).values
	result := make([]T, len(values))
	copy(result, values)
	return result
}
