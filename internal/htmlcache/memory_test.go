package htmlcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGetDelete(t *testing.T) {
	c := NewMemory(0)
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, SubdomainKey("acme"))
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Put(ctx, SubdomainKey("acme"), "<html>acme</html>", time.Minute))
	html, err := c.Get(ctx, SubdomainKey("acme"))
	require.NoError(t, err)
	assert.Equal(t, "<html>acme</html>", html)

	// Overwrite is unconditional, last writer wins.
	require.NoError(t, c.Put(ctx, SubdomainKey("acme"), "<html>v2</html>", time.Minute))
	html, _ = c.Get(ctx, SubdomainKey("acme"))
	assert.Equal(t, "<html>v2</html>", html)

	require.NoError(t, c.Delete(ctx, SubdomainKey("acme")))
	_, err = c.Get(ctx, SubdomainKey("acme"))
	assert.ErrorIs(t, err, ErrMiss)

	// Deleting an absent key is a no-op, not an error.
	assert.NoError(t, c.Delete(ctx, SubdomainKey("acme")))
}

func TestMemoryTTLExpiry(t *testing.T) {
	c := NewMemory(0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "sub:brief", "x", 20*time.Millisecond))
	_, err := c.Get(ctx, "sub:brief")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, err = c.Get(ctx, "sub:brief")
	assert.ErrorIs(t, err, ErrMiss, "expired entry must read as a miss even before the janitor sweeps")
}

func TestMemoryKeyspacePrefixesDoNotCollide(t *testing.T) {
	c := NewMemory(0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, SubdomainKey("acme"), "sub-html", time.Minute))
	require.NoError(t, c.Put(ctx, CustomDomainKey("acme"), "dom-html", time.Minute))

	sub, _ := c.Get(ctx, SubdomainKey("acme"))
	dom, _ := c.Get(ctx, CustomDomainKey("acme"))
	assert.Equal(t, "sub-html", sub)
	assert.Equal(t, "dom-html", dom)

	require.NoError(t, c.Delete(ctx, SubdomainKey("acme")))
	dom, err := c.Get(ctx, CustomDomainKey("acme"))
	require.NoError(t, err, "purging the subdomain key must not touch the domain key")
	assert.Equal(t, "dom-html", dom)
}

func TestMemoryPressureEvictsOldestFirst(t *testing.T) {
	c := NewMemory(2)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "sub:a", "a", 0))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, c.Put(ctx, "sub:b", "b", 0))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, c.Put(ctx, "sub:c", "c", 0))

	c.sweep()

	_, err := c.Get(ctx, "sub:a")
	assert.ErrorIs(t, err, ErrMiss, "oldest entry evicted under pressure")
	_, err = c.Get(ctx, "sub:b")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "sub:c")
	assert.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}
