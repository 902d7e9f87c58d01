package tests_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amp-labs/ifempty/envutil"
	"github.com/amp-labs/ifempty/logger"
	"github.com/amp-labs/ifempty/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUniqueContext(t *testing.T) {
	t.Parallel()

	ctx := tests.GetUniqueContext(t)

	info, ok := tests.GetTestInfo(ctx)
	require.True(t, ok)
	assert.Equal(t, t.Name(), info.Name)
	assert.True(t, strings.HasPrefix(info.Id, "test-"))

	other, _ := tests.GetTestInfo(tests.GetUniqueContext(t))
	assert.NotEqual(t, info.Id, other.Id)

	assert.NotNil(t, logger.Get(ctx))
	logger.Get(ctx).Info("routed through t.Log")
}

func TestGetTestInfoMissing(t *testing.T) {
	t.Parallel()

	_, ok := tests.GetTestInfo(context.Background())
	assert.False(t, ok)
}

func TestWritePackage(t *testing.T) {
	t.Parallel()

	dir := tests.WritePackage(t, map[string]string{
		"a.go":     "package a\n",
		"sub/b.go": "package sub\n",
	})

	assert.Equal(t, "package a\n", tests.ReadFile(t, dir, "a.go"))

	_, err := os.Stat(filepath.Join(dir, "sub", "b.go"))
	require.NoError(t, err)
}

func TestCheckSkipped(t *testing.T) {
	t.Parallel()

	t.Run("skips when set", func(t *testing.T) {
		t.Parallel()

		ctx := envutil.WithEnvOverride(t.Context(), "IFEMPTY_SKIP_TEST", "true")
		tests.CheckSkipped(ctx, t, "IFEMPTY_SKIP_TEST")

		t.Error("should have been skipped")
	})

	t.Run("runs when unset", func(t *testing.T) {
		t.Parallel()

		tests.CheckSkipped(t.Context(), t, "IFEMPTY_SKIP_TEST_UNSET_9c1d")
	})
}
