package anim

import (
	"context"
	"image"
	"image/color"
	"log"
	"time"

	"golang.org/x/image/draw"
)

// FrameDuration is how long each frame stays on screen while it fades out.
const FrameDuration = time.Second

// Fade plays frames one after another, each fading from opaque to
// transparent over its duration. It never loops.
type Fade struct {
	frames   []image.Image
	duration time.Duration
	current  int
	boundary time.Time
	started  bool
}

func NewFade(frames []image.Image, duration time.Duration) *Fade {
	if duration <= 0 {
		duration = FrameDuration
	}
	return &Fade{frames: frames, duration: duration}
}

// Step advances the playback clock to now. It returns the frame to show and
// its opacity, or done once the last frame has run its course.
func (f *Fade) Step(now time.Time) (frame int, alpha float64, done bool) {
	if f.current >= len(f.frames) {
		return 0, 0, true
	}
	if !f.started {
		f.started = true
		f.boundary = now
	}

	elapsed := now.Sub(f.boundary)
	if elapsed > f.duration {
		f.boundary = now
		f.current++
		alpha = 1
	} else {
		alpha = 1 - float64(elapsed)/float64(f.duration)
	}

	if f.current >= len(f.frames) {
		return 0, 0, true
	}
	return f.current, alpha, false
}

// Render draws frame i at the given opacity onto a transparent canvas.
func (f *Fade) Render(i int, alpha float64) *image.RGBA {
	src := f.frames[i]
	dst := image.NewRGBA(src.Bounds())
	mask := image.NewUniform(color.Alpha{A: uint8(clamp01(alpha)*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min, mask, image.Point{}, draw.Over)
	return dst
}

// Play drives the fade from a ticker, handing each rendered frame to show,
// until the last frame ends or ctx is cancelled.
func (f *Fade) Play(ctx context.Context, tick time.Duration, show func(frame int, img *image.RGBA)) error {
	t := time.NewTicker(tick)
	defer t.Stop()

	now := time.Now()
	for {
		frame, alpha, done := f.Step(now)
		if done {
			log.Printf("[ANIM] Fade finished after %d frames", len(f.frames))
			return nil
		}
		show(frame, f.Render(frame, alpha))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now = <-t.C:
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
