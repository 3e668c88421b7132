// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module emit events through package-level hooks that
// default to no-ops. A binary registers its own implementations at startup
// to forward the events to a metrics or tracing backend, without the
// libraries depending on that backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnBuildStart(ctx, name, degree)
//	// ... build the stabilizer chain ...
//	observability.Build().OnBuildComplete(ctx, name, levels, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// BuildHooks receives events from stabilizer chain construction and
// membership queries.
type BuildHooks interface {
	OnBuildStart(ctx context.Context, name string, degree int)
	OnBuildComplete(ctx context.Context, name string, levels int, duration time.Duration, err error)

	// OnMembership records one sift through a chain.
	OnMembership(ctx context.Context, member bool, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string, int)                          {}
func (NoopBuildHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopBuildHooks) OnMembership(context.Context, bool, time.Duration)                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
