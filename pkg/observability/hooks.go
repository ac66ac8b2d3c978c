// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module never log or measure on their own. Instead they
// emit events through hook interfaces whose default implementations do
// nothing. The CLI registers an implementation that writes to its logger;
// embedders can register their own to feed a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, seq)
//	// ... decode and draw ...
//	observability.Render().OnRenderComplete(ctx, seq, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// PlanEvent describes a computed layout plan.
type PlanEvent struct {
	Photo, Paper string
	Rows, Cols   int
	Rotated      bool
}

// RenderHooks receives events from planning and rendering.
type RenderHooks interface {
	// OnPlan records a computed layout plan.
	OnPlan(ctx context.Context, ev PlanEvent)

	// Render events, keyed by the request's sequence number
	OnRenderStart(ctx context.Context, seq uint64)
	OnRenderComplete(ctx context.Context, seq uint64, duration time.Duration, err error)

	// OnRenderStale records a completion that was discarded because a newer
	// request had been submitted in the meantime.
	OnRenderStale(ctx context.Context, seq, latest uint64)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnPlan(context.Context, PlanEvent)                             {}
func (NoopRenderHooks) OnRenderStart(context.Context, uint64)                         {}
func (NoopRenderHooks) OnRenderComplete(context.Context, uint64, time.Duration, error) {}
func (NoopRenderHooks) OnRenderStale(context.Context, uint64, uint64)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
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

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
