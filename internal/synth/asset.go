package synth

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/ycwang/poster-pilot/internal/artifact"
)

// Key identifies one rendered poster slot: a proposal index combined with
// the requested size. Re-rendering the same slot replaces its asset.
type Key struct {
	Proposal int
	Size     artifact.PosterSize
}

// Asset is a revocable handle to one rendered poster image, backed by a
// temp file. After Release the handle is dead and its bytes are gone.
type Asset struct {
	Key      Key
	Path     string
	MIMEType string
	Width    int
	Height   int

	released bool
}

// Bytes reads the rendered image back from disk.
func (a *Asset) Bytes() ([]byte, error) {
	if a.released {
		return nil, fmt.Errorf("asset %s already released", a.Path)
	}
	return os.ReadFile(a.Path)
}

// Release deletes the backing file. Releasing twice is a no-op.
func (a *Asset) Release() {
	if a.released {
		return
	}
	a.released = true
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", a.Path).Msg("failed to remove poster asset")
	}
}

// AssetStore owns the rendered poster assets of a session. Storing a new
// asset under an occupied key releases the previous one first, so at most
// one live asset exists per key.
type AssetStore struct {
	mu     sync.Mutex
	dir    string
	assets map[Key]*Asset
}

// NewAssetStore creates a store rooted at dir. An empty dir uses the
// system temp directory.
func NewAssetStore(dir string) (*AssetStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir %s: %w", dir, err)
	}
	return &AssetStore{dir: dir, assets: make(map[Key]*Asset)}, nil
}

// Put writes the image bytes to a fresh temp file and registers the asset
// under key, releasing any previous asset held there. Image dimensions are
// decoded opportunistically; a decode failure leaves them at zero.
func (s *AssetStore) Put(key Key, data []byte, mimeType string) (*Asset, error) {
	name := uuid.NewString() + extensionFor(mimeType)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write poster asset: %w", err)
	}

	asset := &Asset{Key: key, Path: path, MIMEType: mimeType}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		asset.Width = cfg.Width
		asset.Height = cfg.Height
	} else {
		log.Debug().Err(err).Str("mime", mimeType).Msg("could not decode poster dimensions")
	}

	s.mu.Lock()
	prev := s.assets[key]
	s.assets[key] = asset
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return asset, nil
}

// Get returns the live asset for key, or nil.
func (s *AssetStore) Get(key Key) *Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[key]
}

// ReleaseAll releases every live asset and empties the store.
func (s *AssetStore) ReleaseAll() {
	s.mu.Lock()
	assets := s.assets
	s.assets = make(map[Key]*Asset)
	s.mu.Unlock()

	for _, a := range assets {
		a.Release()
	}
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
