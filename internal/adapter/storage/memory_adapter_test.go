package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStock(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	_, found, err := adapter.GetStock(ctx, "P001")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, adapter.SetStock(ctx, "P001", 5))
	require.NoError(t, adapter.DecrementStock(ctx, "P001", 2))

	qty, found, err := adapter.GetStock(ctx, "P001")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, qty)
}

func TestMemoryDecrementStock_ClampsAtZero(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.SetStock(ctx, "P001", 5))
	require.NoError(t, adapter.DecrementStock(ctx, "P001", 9))

	qty, _, _ := adapter.GetStock(ctx, "P001")
	assert.Equal(t, 0, qty)
}

func TestMemoryDecrementStock_UnknownCodeIgnored(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.DecrementStock(ctx, "missing", 1))

	_, found, _ := adapter.GetStock(ctx, "missing")
	assert.False(t, found)
}
