package synth

import (
	"testing"

	"github.com/ycwang/poster-pilot/internal/artifact"
)

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		size artifact.PosterSize
		want string
	}{
		{artifact.SizeSquare, "1:1"},
		{artifact.SizePortrait, "4:5"},
		{artifact.SizeTallPortrait, "9:16"},
		{artifact.SizeLandscape, "16:9"},
		{artifact.PosterSize("800x600"), "1:1"},
		{artifact.PosterSize(""), "1:1"},
	}

	for _, tt := range tests {
		if got := AspectRatio(tt.size); got != tt.want {
			t.Errorf("AspectRatio(%q) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
