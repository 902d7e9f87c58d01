// Package fixture holds types used to exercise the generator end to end:
// ifempty_gen.go is generated from this file and checked in.
package fixture

//go:generate go run github.com/amp-labs/ifempty/cmd/ifempty-gen --check

// Flag is empty while Value is false.
//
//ifempty:generate
type Flag struct {
	Value bool
}

// IsEmpty reports whether the flag is unset.
func (f Flag) IsEmpty() bool {
	return !f.Value
}

// Bag is an unordered collection of items.
//
//ifempty:generate
type Bag[T any] struct {
	items []T
}

// NewBag returns a Bag holding items.
func NewBag[T any](items ...T) Bag[T] {
	return Bag[T]{items: items}
}

// Len returns the number of items in the bag.
func (b Bag[T]) Len() int {
	return len(b.items)
}

// IsEmpty reports whether the bag holds no items.
func (b Bag[T]) IsEmpty() bool {
	return len(b.items) == 0
}

// Label is not annotated, so nothing is generated for it unless it is
// requested by name.
type Label string

// IsEmpty reports whether the label is blank.
func (l Label) IsEmpty() bool {
	return l == ""
}
