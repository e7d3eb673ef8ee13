package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Items []int
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Items: []int{1, 2}}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, []int{1, 2}, got.Items)
}

func TestMemory_Miss(t *testing.T) {
	c := NewMemory()

	var got payload
	hit, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a"}, 30*time.Second))

	now = now.Add(29 * time.Second)
	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)

	now = now.Add(time.Second)
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit, "entry must expire at ttl")
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ZeroTTLDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a"}, 0))
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	v := payload{Items: []int{1}}
	require.NoError(t, c.Set(ctx, "k", v, time.Minute))
	v.Items[0] = 99

	var got payload
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.Items)
}
