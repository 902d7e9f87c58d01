// Package ifempty returns a fallback value when a value is considered empty
// by its own type's definition of emptiness.
//
// The capability is expressed by the Emptier interface. Any type exposing
// IsEmpty() bool can be used with the generic helpers:
//
//	name := ifempty.String(os.Getenv("NAME"), "anonymous")
//	cfg := ifempty.Value(userConfig, defaultConfig)
//	ptr := ifempty.Ref(&primary, &secondary)
//
// Types that want the method form (value.IfEmpty(fallback)) can have it
// generated by cmd/ifempty-gen:
//
//	//go:generate go run github.com/amp-labs/ifempty/cmd/ifempty-gen
//
//	//ifempty:generate
//	type Settings struct {
//	    Name string
//	}
//
//	func (s Settings) IsEmpty() bool {
//	    return s.Name == ""
//	}
//
// The fallback is never inspected: it is returned as-is when the value is
// empty, and the value is returned as-is otherwise.
package ifempty
