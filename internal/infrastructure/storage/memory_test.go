package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get on a missing key reports absent", func(t *testing.T) {
		s := NewMemoryStore()

		value, ok, err := s.Get(ctx, "inventory")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		s := NewMemoryStore()

		require.NoError(t, s.Set(ctx, "inventory", `[{"name":"牛乳"}]`))

		value, ok, err := s.Get(ctx, "inventory")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"name":"牛乳"}]`, value)
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		s := NewMemoryStore()

		require.NoError(t, s.Set(ctx, "inventory", "old"))
		require.NoError(t, s.Set(ctx, "inventory", "new"))

		value, ok, err := s.Get(ctx, "inventory")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "new", value)
		assert.Equal(t, 1, s.Size())
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := NewMemoryStore()

		require.NoError(t, s.Set(ctx, "a", "1"))
		require.NoError(t, s.Set(ctx, "b", "2"))

		value, ok, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1", value)
		assert.Equal(t, 2, s.Size())
	})
}
