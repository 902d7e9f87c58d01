// Package zero provides utilities for working with zero and empty values of
// generic types.
package zero

import "reflect"

// Value returns the zero value for type T.
// This is useful when you need to explicitly obtain the zero value of a generic type parameter.
//
// Example:
//
//	var defaultInt = zero.Value[int]()        // returns 0
//	var defaultStr = zero.Value[string]()     // returns ""
//	var defaultPtr = zero.Value[*MyStruct]()  // returns nil
func Value[T any]() T {
	var zeroVal T

	return zeroVal
}

// IsZero reports whether value is the zero value for type T.
// It uses reflect.DeepEqual to perform a deep comparison between value and the zero value of T,
// so an initialized but empty map or slice is not zero.
func IsZero[T any](value T) bool {
	var zeroVal T

	return reflect.DeepEqual(value, zeroVal)
}

// IsEmpty reports whether value is empty, which is looser than IsZero:
//
//   - strings, slices, maps, arrays and channels are empty when their length is 0
//   - pointers, interfaces and funcs are empty when nil
//   - everything else is empty when it is the zero value
//
// If value implements interface{ IsEmpty() bool } that method wins.
//
// Example:
//
//	zero.IsEmpty("")               // true
//	zero.IsEmpty([]int{})          // true (IsZero would say false)
//	zero.IsEmpty(map[string]int{}) // true
//	zero.IsEmpty(42)               // false
func IsEmpty[T any](value T) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		// nil interface
		return true
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface, reflect.Func:
		if rv.IsNil() {
			return true
		}
	}

	if e, ok := any(value).(interface{ IsEmpty() bool }); ok {
		return e.IsEmpty()
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return false
	default:
		return rv.IsZero()
	}
}
