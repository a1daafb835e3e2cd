package gateway

import "os"

// Gemini Model IDs
//
// | Model                      | API Model ID                 | Use Case                           |
// |----------------------------|------------------------------|------------------------------------|
// | Gemini 2.5 Flash           | gemini-2.5-flash             | Structured stages + vision         |
// | Imagen 4 Fast              | imagen-4.0-fast-generate-001 | Fast poster generation (Latin)     |
// | Imagen 4                   | imagen-4.0-generate-001      | Poster generation with CJK text    |
// | Gemini 2.5 Flash Image     | gemini-2.5-flash-image       | Fallback image modality            |
const (
	// ModelFlash runs the structured pipeline stages and vision sub-calls.
	ModelFlash = "gemini-2.5-flash"

	// ModelImagenFast is the standard fast image model for Latin-script prompts.
	ModelImagenFast = "imagen-4.0-fast-generate-001"

	// ModelImagenText is the image model variant that renders non-Latin text
	// reliably, used for CJK-script prompts.
	ModelImagenText = "imagen-4.0-generate-001"

	// ModelFlashImage is the image-output content model used as the fallback
	// generation modality.
	ModelFlashImage = "gemini-2.5-flash-image"
)

// StageModel returns the model used for the structured pipeline stages,
// resolved from the GEMINI_MODEL environment variable when set.
func StageModel() string {
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return ModelFlash
}
