package synth

import "github.com/ycwang/poster-pilot/internal/artifact"

// aspectRatios maps each poster size token to the provider aspect ratio.
var aspectRatios = map[artifact.PosterSize]string{
	artifact.SizeSquare:       "1:1",
	artifact.SizePortrait:     "4:5",
	artifact.SizeTallPortrait: "9:16",
	artifact.SizeLandscape:    "16:9",
}

// AspectRatio returns the provider aspect ratio for a poster size.
// Unknown sizes fall back to square so synthesis never fails on the
// mapping alone.
func AspectRatio(size artifact.PosterSize) string {
	if r, ok := aspectRatios[size]; ok {
		return r
	}
	return "1:1"
}
