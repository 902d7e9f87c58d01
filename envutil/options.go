package envutil

// Option adjusts a Reader as it is built, e.g. String(ctx, key, Default("x")).
type Option[T any] func(Reader[T]) Reader[T]

// Default supplies dfl when the variable isn't set.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// Fallback replaces an empty Reader (unset or malformed) with f.
func Fallback[T any](f Reader[T]) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.IfEmpty(f)
	}
}

// Validate runs check on the parsed value; a non-nil result becomes the
// Reader's error.
func Validate[T any](check func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.Map(func(val T) (T, error) {
			return val, check(val)
		})
	}
}
