package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totototosssss/num/internal/game"
)

func testSession(owner string) *game.Session {
	e := game.NewEngine(nil, 0)
	return e.NewSession(owner, []string{"A000045"})
}

func TestSaveAndGet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	s := testSession("alice")

	require.NoError(t, m.Save(ctx, s))
	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestGetMissing(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByOwnerReturnsLatest(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	first := testSession("alice")
	second := testSession("alice")
	require.NoError(t, m.Save(ctx, first))
	require.NoError(t, m.Save(ctx, second))

	got, err := m.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = m.FindByOwner(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
