package export

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"PixelReel/internal/state"

	"github.com/kettek/apng"
)

const AnimationName = "canvasArray.apng"

// WriteAPNG encodes the reel as an animated PNG that plays once, each frame
// held for delay.
func WriteAPNG(w io.Writer, frames []state.Snapshot, delay time.Duration) error {
	if len(frames) == 0 {
		log.Println("[EXPORT] No frames to animate!")
		return state.ErrEmptyReel
	}
	ms := delay.Milliseconds()
	if ms < 1 || ms > math.MaxUint16 {
		return fmt.Errorf("frame delay %s out of range", delay)
	}

	images, err := state.DecodeAll(frames)
	if err != nil {
		return err
	}
	a := apng.APNG{Frames: make([]apng.Frame, 0, len(images)), LoopCount: 1}
	for _, img := range images {
		a.Frames = append(a.Frames, apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(ms),
			DelayDenominator: 1000,
		})
	}
	if err := apng.Encode(w, a); err != nil {
		return fmt.Errorf("encode apng: %w", err)
	}
	log.Printf("[EXPORT] Wrote animated PNG with %d frames", len(images))
	return nil
}
