// Package observability provides hooks for scan metrics.
//
// This package enables optional instrumentation without making the scan
// packages depend on a metrics backend. The CLI registers hooks at startup
// and the scan driver emits events through whatever is registered.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [PrometheusHooks] implements every interface and can write the collected
// metrics to a node_exporter textfile after a run.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks()
//	    observability.SetScanHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run the scan
//	    _ = hooks.WriteTextfile("souper.prom")
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnManifestParsed(ctx, "cargo", 12, elapsed, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from the scan driver.
type ScanHooks interface {
	// OnScanStart records the start of a scan rooted at root.
	OnScanStart(ctx context.Context, root string)

	// OnManifestParsed records one extractor run over one manifest.
	OnManifestParsed(ctx context.Context, kind string, deps int, duration time.Duration, err error)

	// OnScanComplete records the end of a scan.
	OnScanComplete(ctx context.Context, manifests, deps int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the extraction cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, kind string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, kind string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string)                                {}
func (NoopScanHooks) OnManifestParsed(context.Context, string, int, time.Duration, error) {}
func (NoopScanHooks) OnScanComplete(context.Context, int, int, time.Duration, error)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks  ScanHooks  = NoopScanHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any scan.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
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
	scanHooks = NoopScanHooks{}
	cacheHooks = NoopCacheHooks{}
}
