// Package envutil reads typed configuration from environment variables and
// env files.
package envutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// get returns a Reader for the given environment variable key. Overrides
// stored in ctx take precedence over the process environment.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getEnvOverride(ctx, key); ok {
		return Reader[string]{key: key, present: true, value: val}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	return apply(get(ctx, key), opts)
}

// Strings returns a Reader for a comma separated list. Items are trimmed
// and blank items dropped, so "a, b,,c" reads as [a b c].
func Strings(ctx context.Context, key string, opts ...Option[[]string]) Reader[[]string] {
	rdr := Map(get(ctx, key), func(s string) ([]string, error) {
		items := lo.Map(strings.Split(s, ","), func(item string, _ int) string {
			return strings.TrimSpace(item)
		})

		return lo.Compact(items), nil
	})

	return apply(rdr, opts)
}

// Bool returns a Reader for the given environment variable key.
// Accepts anything strconv.ParseBool does.
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	rdr := Map(get(ctx, key), func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	})

	return apply(rdr, opts)
}

// Intish is the set of signed integer types Int can produce.
type Intish interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Int returns a Reader for the given environment variable key.
// Values that overflow I are reported as parse errors.
func Int[I Intish](ctx context.Context, key string, opts ...Option[I]) Reader[I] {
	rdr := Map(get(ctx, key), func(s string) (I, error) {
		parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, err
		}

		out := I(parsed)
		if int64(out) != parsed {
			return 0, fmt.Errorf("%w: %d", strconv.ErrRange, parsed)
		}

		return out, nil
	})

	return apply(rdr, opts)
}

// SlogLevel returns a Reader for the given environment variable key.
// Accepts the names understood by slog.Level (debug, info, warn, error,
// optionally with an offset such as "info+2").
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	rdr := Map(get(ctx, key), func(s string) (slog.Level, error) {
		var level slog.Level

		err := level.UnmarshalText([]byte(strings.TrimSpace(s)))

		return level, err
	})

	return apply(rdr, opts)
}
