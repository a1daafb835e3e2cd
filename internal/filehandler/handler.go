// Package filehandler loads product image files from disk for the analyze
// and render stages.
package filehandler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
)

// SupportedImageExtensions defines the file extensions accepted for a
// product image.
var SupportedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MaxImageBytes caps the product image payload at 10 MB, well under the
// provider's inline-data limit.
const MaxImageBytes = 10 * 1024 * 1024

// LoadProductImage reads an image file and returns it as an inline payload.
// The MIME type comes from the extension, cross-checked against the sniffed
// content; a mismatch trusts the content.
func LoadProductImage(path string) (*artifact.InlineImage, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := SupportedImageExtensions[ext]
	if !ok {
		return nil, apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("unsupported image extension %q", ext))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.PreconditionFailed, "cannot access image file", err)
	}
	if info.Size() > MaxImageBytes {
		return nil, apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("image file exceeds %d MB", MaxImageBytes/(1024*1024)))
	}
	if info.Size() == 0 {
		return nil, apperr.New(apperr.PreconditionFailed, "image file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.PreconditionFailed, "cannot read image file", err)
	}

	if sniffed := http.DetectContentType(data); sniffed != mimeType && strings.HasPrefix(sniffed, "image/") {
		log.Debug().Str("path", path).
			Str("extension_type", mimeType).
			Str("sniffed_type", sniffed).
			Msg("image extension disagrees with content, using sniffed type")
		mimeType = sniffed
	}

	return &artifact.InlineImage{Data: data, MIMEType: mimeType}, nil
}
