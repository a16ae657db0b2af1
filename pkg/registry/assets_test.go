package registry

import (
	"context"
	"testing"

	"github.com/goliatone/go-blockgen/pkg/schema"
)

func TestAssetCollectorDeduplicatesHandlesPerKind(t *testing.T) {
	collector := NewAssetCollector()
	ctx := context.Background()

	collector.EnqueueAsset(ctx, AssetScript, schema.Asset{Handle: "shared", Src: "/a.js"})
	collector.EnqueueAsset(ctx, AssetScript, schema.Asset{Handle: "shared", Src: "/b.js"})
	collector.EnqueueAsset(ctx, AssetStyle, schema.Asset{Handle: "shared", Src: "/a.css"})

	scripts := collector.Scripts()
	if len(scripts) != 1 || scripts[0].Src != "/a.js" {
		t.Fatalf("expected first script registration to win, got %+v", scripts)
	}
	if styles := collector.Styles(); len(styles) != 1 {
		t.Fatalf("expected style with the same handle to be kept, got %+v", styles)
	}

	collector.Reset()
	if len(collector.Scripts()) != 0 || len(collector.Styles()) != 0 {
		t.Fatalf("expected reset to clear collected assets")
	}
}

func TestRenderSkipsIncompleteAssets(t *testing.T) {
	collector := NewAssetCollector()
	reg := New(WithAssetSink(collector))
	ctx := context.Background()

	err := reg.RegisterBlock(ctx, schema.Block{
		Name:           "plain",
		Title:          "Plain",
		EnqueueScripts: []schema.Asset{{Handle: "no-src"}, {Src: "/no-handle.js"}},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.RenderInstance(ctx, "plain", nil, "")
	if got := collector.Scripts(); len(got) != 0 {
		t.Fatalf("expected incomplete assets to be skipped, got %+v", got)
	}
}
