package analyzer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathProberCachesByResolvedURL(t *testing.T) {
	stub := newStubFetcher("", nil)
	stub.outcomes["/admin/"] = ProbeFound
	p := newPathProber(stub, "https://example.com/shop/", 0)

	ctx := context.Background()
	assert.True(t, p.Exists(ctx, "/admin/"))
	assert.True(t, p.Exists(ctx, "/admin/"))
	assert.False(t, p.Exists(ctx, "/missing/"))

	assert.Equal(t, 1, stub.probeCount("/admin/"))
	assert.Equal(t, 2, p.Requests())
}

func TestPathProberCoalescesConcurrentCallers(t *testing.T) {
	stub := newStubFetcher("", nil)
	stub.outcomes["/cart.js"] = ProbeFound
	p := newPathProber(stub, "https://example.com", 0)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, p.Exists(context.Background(), "/cart.js"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, stub.probeCount("/cart.js"))
	assert.Equal(t, 1, p.Requests())
}

func TestPathProberFoldsTransportErrors(t *testing.T) {
	stub := newStubFetcher("", nil)
	stub.outcomes["/wp-admin/"] = ProbeTransportError
	p := newPathProber(stub, "https://example.com", 0)

	assert.Equal(t, ProbeTransportError, p.Outcome(context.Background(), "/wp-admin/"))
	assert.False(t, p.Exists(context.Background(), "/wp-admin/"))
	assert.Equal(t, 1, stub.probeCount("/wp-admin/"))
}

func TestPathProberRateLimited(t *testing.T) {
	stub := newStubFetcher("", nil)
	stub.outcomes["/a"] = ProbeFound
	p := newPathProber(stub, "https://example.com", 1000)

	ctx := context.Background()
	assert.True(t, p.Exists(ctx, "/a"))
	assert.False(t, p.Exists(ctx, "/b"))
	assert.False(t, p.Exists(ctx, "/c"))
	assert.Equal(t, 3, p.Requests())
}

func TestPathProberCancelledWhileWaiting(t *testing.T) {
	stub := newStubFetcher("", nil)
	p := newPathProber(stub, "https://example.com", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, ProbeTransportError, p.Outcome(ctx, "/admin/"))
	assert.Zero(t, stub.probeCount("/admin/"))
}
