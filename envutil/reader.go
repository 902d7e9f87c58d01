//nolint:ireturn
package envutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

//go:generate go run github.com/amp-labs/ifempty/cmd/ifempty-gen

var (
	ErrBadEnvVar     = errors.New("error parsing environment variable")
	ErrEnvVarMissing = errors.New("missing environment variable")
)

// Reader is a setting read from the environment: its key, whether it was
// set, the parsed value and any parse error. Options and Map chain on it
// before the value is finally taken with Value, ValueOrElse or ValueOrFatal.
//
// A Reader is empty when it has nothing usable, so a missing or malformed
// setting can fall back to another one:
//
//	workers := envutil.Int[int](ctx, "IFEMPTY_WORKERS").IfEmpty(envutil.Int[int](ctx, "WORKERS"))
//
//ifempty:generate
type Reader[A any] struct {
	key     string
	present bool
	err     error

	value A
}

// IsEmpty reports whether the variable was unset or failed to parse.
func (e Reader[A]) IsEmpty() bool {
	return !e.HasValue()
}

// HasValue reports whether the variable was set and parsed cleanly.
func (e Reader[A]) HasValue() bool {
	return e.present && e.err == nil
}

// Value returns the parsed value. The error wraps ErrBadEnvVar for parse
// failures and ErrEnvVarMissing when the variable isn't set.
func (e Reader[A]) Value() (A, error) {
	switch {
	case e.err != nil:
		return e.value, fmt.Errorf("%w %s: %w (given value is %v)", ErrBadEnvVar, e.key, e.err, e.value)
	case !e.present:
		return e.value, fmt.Errorf("%w %s", ErrEnvVarMissing, e.key)
	default:
		return e.value, nil
	}
}

// ValueOrFatal is Value for settings a command can't run without: any error
// is logged and the process exits.
func (e Reader[A]) ValueOrFatal() A {
	value, err := e.Value()
	if err != nil {
		slog.Error("error reading environment variable", "key", e.key, "error", err)
		os.Exit(1)
	}

	return value
}

// ValueOrElse returns the parsed value, or v when there is none. A value
// that failed to parse is logged before being replaced.
func (e Reader[A]) ValueOrElse(v A) A {
	if e.HasValue() {
		return e.value
	}

	if e.err != nil {
		slog.Warn("ignoring malformed environment variable",
			"key", e.key, "error", e.err, "fallback", v)
	}

	return v
}

func (e Reader[A]) String() string {
	switch {
	case e.HasValue():
		return fmt.Sprintf("%s=%v", e.key, e.value)
	case e.err != nil:
		return fmt.Sprintf("%s=<error: %v>", e.key, e.err)
	default:
		return e.key + "=<not set>"
	}
}

// WithDefault fills in v when the variable isn't set. A parse error is kept.
func (e Reader[A]) WithDefault(v A) Reader[A] {
	if e.present {
		return e
	}

	e.present = true
	e.value = v

	return e
}

// Map transforms the value in place of its type; see the Map function for
// conversions.
func (e Reader[A]) Map(f func(A) (A, error)) Reader[A] {
	return Map(e, f)
}

// Map converts a Reader's value with f. Unset and already failed readers
// pass through untouched, and an error from f becomes the new reader's
// parse error.
func Map[A any, B any](env Reader[A], f func(A) (B, error)) Reader[B] {
	out := Reader[B]{key: env.key, present: env.present, err: env.err}
	if !env.HasValue() {
		return out
	}

	out.value, out.err = f(env.value)

	return out
}
