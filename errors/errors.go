// Package errors holds error helpers shared across the module.
package errors

import (
	"sync"

	"go.uber.org/multierr"
)

// Collection accumulates errors from several operations and hands them back
// as a single error. It is safe for concurrent use, so workers running in a
// pool can report into the same Collection.
type Collection struct {
	mut sync.Mutex
	err error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err == nil {
		return
	}

	c.mut.Lock()
	defer c.mut.Unlock()

	c.err = multierr.Append(c.err, err)
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.mut.Lock()
	defer c.mut.Unlock()

	c.err = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	c.mut.Lock()
	defer c.mut.Unlock()

	return c.err != nil
}

// Errors returns the individual errors in the order they were added.
func (c *Collection) Errors() []error {
	c.mut.Lock()
	defer c.mut.Unlock()

	return multierr.Errors(c.err)
}

// GetError returns the collected errors as a single error: nil when empty,
// the error itself when there is exactly one, and a combined error
// otherwise. The combined error works with errors.Is and errors.As.
func (c *Collection) GetError() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	return c.err
}
