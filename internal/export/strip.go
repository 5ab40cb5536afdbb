package export

import (
	"fmt"
	"io"
	"log"

	"PixelReel/internal/anim"
	"PixelReel/internal/state"

	"github.com/fogleman/gg"
)

const StripName = "canvasStrip.png"

// WriteStrip renders the reel side by side into one PNG.
func WriteStrip(w io.Writer, frames []state.Snapshot) error {
	if len(frames) == 0 {
		log.Println("[EXPORT] No frames to lay out!")
		return state.ErrEmptyReel
	}
	images, err := state.DecodeAll(frames)
	if err != nil {
		return err
	}
	b := images[0].Bounds()
	strip := anim.Strip(images, b.Dx(), b.Dy())
	if err := gg.NewContextForRGBA(strip).EncodePNG(w); err != nil {
		return fmt.Errorf("encode strip: %w", err)
	}
	log.Printf("[EXPORT] Wrote %dx%d strip of %d frames", strip.Bounds().Dx(), strip.Bounds().Dy(), len(images))
	return nil
}
