package ifempty

import (
	"github.com/amp-labs/ifempty/zero"
	"github.com/samber/lo"
)

// Emptier is implemented by any type that can report whether a value is
// empty under its own definition (zero length text, no items, unset, ...).
// IsEmpty must not mutate the receiver.
type Emptier interface {
	IsEmpty() bool
}

// IfEmptier is the method form of the fallback contract. Types generated by
// ifempty-gen, as well as Text and RawText, implement it.
//
//	var _ ifempty.IfEmptier[ifempty.Text] = ifempty.Text("")
type IfEmptier[T any] interface {
	IfEmpty(fallback T) T
}

// Value returns fallback if value.IsEmpty() reports true, otherwise it
// returns value.
//
// Example:
//
//	type Token struct{ raw string }
//	func (t Token) IsEmpty() bool { return t.raw == "" }
//
//	tok := ifempty.Value(Token{}, Token{raw: "anonymous"}) // Token{raw: "anonymous"}
func Value[T Emptier](value, fallback T) T { //nolint:ireturn
	if value.IsEmpty() {
		return fallback
	}

	return value
}

// Ref is the borrowed form of Value. Neither argument is copied: the result
// is one of the two pointers passed in. A nil value is treated as empty.
//
// Example:
//
//	primary, secondary := ifempty.Text(""), ifempty.Text("text")
//	p := ifempty.Ref(&primary, &secondary) // p == &secondary
func Ref[T Emptier](value, fallback *T) *T {
	if value == nil || (*value).IsEmpty() {
		return fallback
	}

	return value
}

// Func is like Value, but the caller supplies the emptiness predicate.
// This is useful for types you don't own.
//
// Example:
//
//	port := ifempty.Func(cfg.Port, 8080, func(p int) bool { return p <= 0 })
func Func[T any](value, fallback T, isEmpty func(T) bool) T { //nolint:ireturn
	if isEmpty(value) {
		return fallback
	}

	return value
}

// Lazy is like Value, but the fallback is only computed when value is
// empty. Use it when building the fallback is expensive.
func Lazy[T Emptier](value T, fallback func() T) T { //nolint:ireturn
	if value.IsEmpty() {
		return fallback()
	}

	return value
}

// Coalesce returns the first value that is not empty. If every value is
// empty (or no values are given) the zero value of T is returned.
//
// Example:
//
//	name := ifempty.Coalesce(ifempty.Text(flagName), ifempty.Text(envName), "default")
func Coalesce[T Emptier](values ...T) T { //nolint:ireturn
	return lo.FindOrElse(values, zero.Value[T](), func(value T) bool {
		return !value.IsEmpty()
	})
}

// Zero treats the zero value of a comparable type as empty.
//
// Example:
//
//	timeout := ifempty.Zero(opts.Timeout, 30*time.Second)
func Zero[T comparable](value, fallback T) T { //nolint:ireturn
	var zeroVal T

	if value == zeroVal {
		return fallback
	}

	return value
}

// Any works on values of any type, using zero.IsEmpty as the predicate:
// strings, slices, maps and channels are empty when they have no elements,
// pointers, interfaces and funcs when nil, everything else when it equals
// its zero value.
func Any[T any](value, fallback T) T { //nolint:ireturn
	if zero.IsEmpty(value) {
		return fallback
	}

	return value
}
