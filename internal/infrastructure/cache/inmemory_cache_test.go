package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDoc struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

func TestInMemoryCache_SetGetRoundTrip(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	err := c.SetJSON(ctx, "cliente:id:1", cachedDoc{ID: 1, Nome: "Maria"}, time.Minute)
	require.NoError(t, err)

	var got cachedDoc
	hit, err := c.GetJSON(ctx, "cliente:id:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Maria", got.Nome)
}

func TestInMemoryCache_MissOnAbsentKey(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()

	var got cachedDoc
	hit, err := c.GetJSON(context.Background(), "cliente:id:404", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "cliente:id:1", cachedDoc{ID: 1}, -time.Second))

	var got cachedDoc
	hit, err := c.GetJSON(ctx, "cliente:id:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestInMemoryCache_Delete(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "cliente:id:1", cachedDoc{ID: 1}, time.Minute))
	require.NoError(t, c.Delete(ctx, "cliente:id:1"))

	var got cachedDoc
	hit, _ := c.GetJSON(ctx, "cliente:id:1", &got)
	assert.False(t, hit)
}

func TestInMemoryCache_DeleteByPattern(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "cliente:list:p1", cachedDoc{}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "cliente:list:p2", cachedDoc{}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "cliente:id:1", cachedDoc{ID: 1}, time.Minute))

	deleted, err := c.DeleteByPattern(ctx, "cliente:list:*")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The id entry survives the list sweep
	var got cachedDoc
	hit, _ := c.GetJSON(ctx, "cliente:id:1", &got)
	assert.True(t, hit)
	assert.Equal(t, 1, c.Len())
}

func TestInMemoryCache_DeleteByPatternCrossesSlashes(t *testing.T) {
	// List keys embed serialized filters, so a search term containing '/'
	// ends up inside the key and the sweep must still remove it.
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	key := `cliente:list:p1:l10:f{"search":"a/b"}:o{"field":"id","direction":"desc"}`
	require.NoError(t, c.SetJSON(ctx, key, cachedDoc{}, time.Minute))

	deleted, err := c.DeleteByPattern(ctx, "cliente:list:*")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var got cachedDoc
	hit, _ := c.GetJSON(ctx, key, &got)
	assert.False(t, hit)
}

func TestMatchKey(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"cliente:list:*", "cliente:list:p1", true},
		{"cliente:list:*", `cliente:list:f{"search":"a/b"}`, true},
		{"cliente:list:*", "cliente:id:1", false},
		{"cliente:id:?", "cliente:id:1", true},
		{"cliente:id:?", "cliente:id:12", false},
		{"cliente:id:1", "cliente:id:1", true},
		{"*", "", true},
		{"", "cliente:id:1", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, matchKey(tc.pattern, tc.key), "pattern %q key %q", tc.pattern, tc.key)
	}
}

func TestInMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemoryCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
