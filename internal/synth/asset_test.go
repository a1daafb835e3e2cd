package synth

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/ycwang/poster-pilot/internal/artifact"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestAssetStorePutDecodesDimensions(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetStore: %v", err)
	}

	asset, err := store.Put(Key{Proposal: 0, Size: artifact.SizeSquare}, pngBytes(t, 32, 16), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if asset.Width != 32 || asset.Height != 16 {
		t.Errorf("dimensions = %dx%d, want 32x16", asset.Width, asset.Height)
	}
	if ext := asset.Path[len(asset.Path)-4:]; ext != ".png" {
		t.Errorf("path %q missing png extension", asset.Path)
	}
}

func TestAssetStorePutUndecodableBytes(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetStore: %v", err)
	}

	// Opaque bytes still produce a usable asset, just without dimensions.
	asset, err := store.Put(Key{Proposal: 0, Size: artifact.SizeSquare}, []byte("not an image"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if asset.Width != 0 || asset.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", asset.Width, asset.Height)
	}
	data, err := asset.Bytes()
	if err != nil || string(data) != "not an image" {
		t.Errorf("Bytes() = %q, %v", data, err)
	}
}

func TestAssetStoreKeysAreIndependent(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetStore: %v", err)
	}

	square, err := store.Put(Key{Proposal: 0, Size: artifact.SizeSquare}, []byte("square"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	portrait, err := store.Put(Key{Proposal: 0, Size: artifact.SizePortrait}, []byte("portrait"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Same proposal under a different size does not evict the first asset.
	if _, err := square.Bytes(); err != nil {
		t.Errorf("square asset released: %v", err)
	}
	if store.Get(Key{Proposal: 0, Size: artifact.SizeSquare}) != square {
		t.Error("square asset missing from store")
	}
	if store.Get(Key{Proposal: 0, Size: artifact.SizePortrait}) != portrait {
		t.Error("portrait asset missing from store")
	}
}

func TestReleaseAll(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetStore: %v", err)
	}

	a1, _ := store.Put(Key{Proposal: 0, Size: artifact.SizeSquare}, []byte("a"), "image/jpeg")
	a2, _ := store.Put(Key{Proposal: 1, Size: artifact.SizeSquare}, []byte("b"), "image/jpeg")

	store.ReleaseAll()

	for _, a := range []*Asset{a1, a2} {
		if _, err := os.Stat(a.Path); !os.IsNotExist(err) {
			t.Errorf("asset file %s survived ReleaseAll", a.Path)
		}
	}
	if store.Get(Key{Proposal: 0, Size: artifact.SizeSquare}) != nil {
		t.Error("store still holds assets after ReleaseAll")
	}
}

func TestAssetReleaseIsIdempotent(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetStore: %v", err)
	}

	asset, _ := store.Put(Key{Proposal: 0, Size: artifact.SizeSquare}, []byte("a"), "image/jpeg")
	asset.Release()
	asset.Release()

	if _, err := asset.Bytes(); err == nil {
		t.Error("Bytes() succeeded on a released asset")
	}
}
