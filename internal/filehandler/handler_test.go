package filehandler

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

func writeTempPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(t.TempDir(), "product.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func wantPrecondition(t *testing.T, err error) {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.PreconditionFailed {
		t.Fatalf("error = %v, want PreconditionFailed", err)
	}
}

func TestLoadProductImage(t *testing.T) {
	img, err := LoadProductImage(writeTempPNG(t))
	if err != nil {
		t.Fatalf("LoadProductImage: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", img.MIMEType)
	}
	if len(img.Data) == 0 {
		t.Error("empty payload")
	}
}

func TestLoadProductImageUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadProductImage(path)
	wantPrecondition(t, err)
}

func TestLoadProductImageMissingFile(t *testing.T) {
	_, err := LoadProductImage(filepath.Join(t.TempDir(), "missing.png"))
	wantPrecondition(t, err)
}

func TestLoadProductImageEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jpg")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadProductImage(path)
	wantPrecondition(t, err)
}

func TestLoadProductImageSniffCorrectsExtension(t *testing.T) {
	// PNG bytes behind a .jpg extension resolve to image/png.
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "actually-png.jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	img, err := LoadProductImage(path)
	if err != nil {
		t.Fatalf("LoadProductImage: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want sniffed image/png", img.MIMEType)
	}
}
