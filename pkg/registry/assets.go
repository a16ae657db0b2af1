package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-blockgen/pkg/schema"
)

// AssetKind separates scripts from styles.
type AssetKind string

const (
	AssetScript AssetKind = "script"
	AssetStyle  AssetKind = "style"
)

// AssetSink receives the assets a rendered block depends on. Only assets with
// both a handle and a src are passed on.
type AssetSink interface {
	EnqueueAsset(ctx context.Context, kind AssetKind, asset schema.Asset)
}

type noopSink struct{}

func (noopSink) EnqueueAsset(context.Context, AssetKind, schema.Asset) {}

// AssetCollector gathers enqueued assets, keeping the first registration of
// each handle per kind.
type AssetCollector struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	scripts []schema.Asset
	styles  []schema.Asset
}

var _ AssetSink = (*AssetCollector)(nil)

// NewAssetCollector constructs an empty collector.
func NewAssetCollector() *AssetCollector {
	return &AssetCollector{seen: make(map[string]struct{})}
}

// EnqueueAsset satisfies AssetSink.
func (c *AssetCollector) EnqueueAsset(_ context.Context, kind AssetKind, asset schema.Asset) {
	if c == nil {
		return
	}
	key := string(kind) + ":" + strings.TrimSpace(asset.Handle)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	switch kind {
	case AssetStyle:
		c.styles = append(c.styles, asset)
	default:
		c.scripts = append(c.scripts, asset)
	}
}

// Scripts returns the collected scripts in enqueue order.
func (c *AssetCollector) Scripts() []schema.Asset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]schema.Asset(nil), c.scripts...)
}

// Styles returns the collected styles in enqueue order.
func (c *AssetCollector) Styles() []schema.Asset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]schema.Asset(nil), c.styles...)
}

// Reset clears the collector between requests.
func (c *AssetCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = make(map[string]struct{})
	c.scripts = nil
	c.styles = nil
}

func (r *Registry) enqueueAssets(ctx context.Context, block schema.Block) {
	for _, asset := range block.EnqueueScripts {
		if enqueueable(asset) {
			r.assets.EnqueueAsset(ctx, AssetScript, asset)
		}
	}
	for _, asset := range block.EnqueueStyles {
		if enqueueable(asset) {
			r.assets.EnqueueAsset(ctx, AssetStyle, asset)
		}
	}
}

func enqueueable(asset schema.Asset) bool {
	return strings.TrimSpace(asset.Handle) != "" && strings.TrimSpace(asset.Src) != ""
}
