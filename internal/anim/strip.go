package anim

import (
	"image"

	"github.com/fogleman/gg"
)

// Strip lays frames out left to right on one canvas of width*len(frames) by
// height, each at full opacity at x = i*width.
func Strip(frames []image.Image, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width*len(frames), height))
	dc := gg.NewContextForRGBA(out)
	for i, frame := range frames {
		dc.DrawImage(frame, i*width, 0)
	}
	return out
}
