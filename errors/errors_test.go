package errors_test

import (
	"errors"
	"sync"
	"testing"

	amperrors "github.com/amp-labs/ifempty/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Add(t *testing.T) {
	t.Parallel()

	t.Run("adds non-nil errors", func(t *testing.T) {
		t.Parallel()

		c := &amperrors.Collection{}
		err1 := errors.New("error 1") //nolint:err113
		err2 := errors.New("error 2") //nolint:err113

		c.Add(err1)
		c.Add(err2)

		assert.True(t, c.HasError())
		assert.Equal(t, []error{err1, err2}, c.Errors())
	})

	t.Run("ignores nil errors", func(t *testing.T) {
		t.Parallel()

		c := &amperrors.Collection{}

		c.Add(nil)

		assert.False(t, c.HasError())
		assert.Empty(t, c.Errors())
		assert.NoError(t, c.GetError())
	})
}

func TestCollection_Clear(t *testing.T) {
	t.Parallel()

	c := &amperrors.Collection{}
	c.Add(assert.AnError)
	require.True(t, c.HasError())

	c.Clear()

	assert.False(t, c.HasError())
	assert.NoError(t, c.GetError())
}

func TestCollection_GetError(t *testing.T) {
	t.Parallel()

	t.Run("single error is returned as is", func(t *testing.T) {
		t.Parallel()

		c := &amperrors.Collection{}
		c.Add(assert.AnError)

		assert.Same(t, assert.AnError, c.GetError()) //nolint:testifylint
	})

	t.Run("multiple errors are combined", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("sentinel") //nolint:err113

		c := &amperrors.Collection{}
		c.Add(assert.AnError)
		c.Add(sentinel)

		err := c.GetError()
		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "sentinel")
	})
}

func TestCollection_Concurrent(t *testing.T) {
	t.Parallel()

	c := &amperrors.Collection{}

	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			c.Add(assert.AnError)
		}()
	}

	wg.Wait()

	assert.Len(t, c.Errors(), 50)
}
