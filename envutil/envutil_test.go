package envutil_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/amp-labs/ifempty/envutil"
	"github.com/amp-labs/ifempty/ifempty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooSmall = errors.New("too small")

func TestString(t *testing.T) {
	t.Parallel()

	t.Run("present value", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "TEST_STRING", "hello")

		reader := envutil.String(ctx, "TEST_STRING")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
		assert.True(t, reader.HasValue())
		assert.False(t, reader.IsEmpty())
		assert.Equal(t, "TEST_STRING=hello", reader.String())
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		reader := envutil.String(t.Context(), "TEST_STRING_MISSING_1f8a")
		_, err := reader.Value()
		require.ErrorIs(t, err, envutil.ErrEnvVarMissing)
		assert.False(t, reader.HasValue())
		assert.True(t, reader.IsEmpty())
		assert.Equal(t, "TEST_STRING_MISSING_1f8a=<not set>", reader.String())
	})

	t.Run("with default", func(t *testing.T) {
		t.Parallel()

		reader := envutil.String(t.Context(), "TEST_STRING_MISSING_1f8a", envutil.Default("default"))
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "default", value)
	})
}

func TestStrings(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "TEST_TYPES", " Foo, Bar,,Baz ")

	value, err := envutil.Strings(ctx, "TEST_TYPES").Value()
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, value)
}

func TestBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{" t ", true},
		{"false", false},
		{"0", false},
		{"f", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			ctx := envutil.WithEnvOverride(t.Context(), "TEST_BOOL", tt.value)

			value, err := envutil.Bool(ctx, "TEST_BOOL").Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "TEST_BOOL", "maybe")

		reader := envutil.Bool(ctx, "TEST_BOOL")
		assert.True(t, reader.IsEmpty())
		assert.False(t, reader.HasValue())

		_, err := reader.Value()
		require.ErrorIs(t, err, envutil.ErrBadEnvVar)
	})
}

func TestInt(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "TEST_INT", "42")
	ctx = envutil.WithEnvOverride(ctx, "TEST_INT8", "300")

	assert.Equal(t, 42, envutil.Int[int](ctx, "TEST_INT").ValueOrElse(0))
	_, err := envutil.Int[int8](ctx, "TEST_INT8").Value()
	require.ErrorIs(t, err, strconv.ErrRange)
	assert.Equal(t, int8(7), envutil.Int[int8](ctx, "TEST_INT8").ValueOrElse(7))
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "TEST_LEVEL", "debug")

	assert.Equal(t, slog.LevelDebug, envutil.SlogLevel(ctx, "TEST_LEVEL").ValueOrElse(slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn,
		envutil.SlogLevel(ctx, "TEST_LEVEL_MISSING_1f8a", envutil.Default(slog.LevelWarn)).ValueOrElse(slog.LevelInfo))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "TEST_WORKERS", "0")

	reader := envutil.Int[int](ctx, "TEST_WORKERS", envutil.Validate(func(n int) error {
		if n < 1 {
			return errTooSmall
		}

		return nil
	}))

	_, err := reader.Value()
	require.ErrorIs(t, err, errTooSmall)
}

func TestReaderIfEmpty(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(context.Background(), "TEST_PRIMARY", "primary")
	ctx = envutil.WithEnvOverride(ctx, "TEST_SECONDARY", "secondary")
	ctx = envutil.WithEnvOverride(ctx, "TEST_BROKEN", "not-a-number")

	missing := envutil.String(ctx, "TEST_PRIMARY_MISSING_1f8a")
	primary := envutil.String(ctx, "TEST_PRIMARY")
	secondary := envutil.String(ctx, "TEST_SECONDARY")

	assert.Equal(t, "secondary", missing.IfEmpty(secondary).ValueOrElse(""))
	assert.Equal(t, "primary", primary.IfEmpty(secondary).ValueOrElse(""))
	assert.Equal(t, "secondary", ifempty.Value(missing, secondary).ValueOrElse(""))

	// a parse error also counts as empty
	broken := envutil.Int[int](ctx, "TEST_BROKEN")
	assert.Equal(t, 5, broken.IfEmpty(envutil.Int[int](ctx, "TEST_MANUAL", envutil.Default(5))).ValueOrElse(0))

	// Fallback option is the same thing, applied while reading
	assert.Equal(t, "secondary",
		envutil.String(ctx, "TEST_PRIMARY_MISSING_1f8a", envutil.Fallback(secondary)).ValueOrElse(""))
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	files := map[string]string{
		"test.env":  "# comment\nFOO=bar\nexport QUOTED=\"a b\"\n",
		"test.json": `{"env": {"FOO": "bar", "QUOTED": "a b"}}`,
		"test.yaml": "env:\n  FOO: bar\n  QUOTED: a b\n",
	}

	for name, contents := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		vars, err := envutil.LoadEnvFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, map[string]string{"FOO": "bar", "QUOTED": "a b"}, vars, name)
	}

	_, err := envutil.LoadEnvFile(filepath.Join(dir, "test.toml"))
	require.ErrorIs(t, err, envutil.ErrUnknownFileType)

	_, err = envutil.LoadEnvFile(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
}

//nolint:paralleltest // uses t.Setenv
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "gen.env")
	second := filepath.Join(dir, "gen.yaml")

	require.NoError(t, os.WriteFile(first, []byte("IFEMPTY_TEST_FROM_FILE=file\nIFEMPTY_TEST_PRESET=file\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("env:\n  IFEMPTY_TEST_FROM_FILE: second\n"), 0o600))

	t.Setenv("IFEMPTY_TEST_PRESET", "env")
	t.Setenv("IFEMPTY_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("IFEMPTY_TEST_FROM_FILE"))

	set, err := envutil.Load([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 1, set)
	assert.Equal(t, "file", os.Getenv("IFEMPTY_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("IFEMPTY_TEST_PRESET"))

	set, err = envutil.Load([]string{first, second}, envutil.WithOverride(true))
	require.NoError(t, err)
	assert.Equal(t, 2, set)
	assert.Equal(t, "second", os.Getenv("IFEMPTY_TEST_FROM_FILE"))
	assert.Equal(t, "file", os.Getenv("IFEMPTY_TEST_PRESET"))

	_, err = envutil.Load([]string{filepath.Join(dir, "gen.toml")})
	require.ErrorIs(t, err, envutil.ErrUnknownFileType)
}
