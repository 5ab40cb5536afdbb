package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"PixelReel/internal/anim"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const fadeTick = 16 * time.Millisecond

// reelView is a playback window. It only knows what arrives in its handoff.
type reelView struct {
	window fyne.Window
	image  *canvas.Image
	status *widget.Label
}

// Animate opens a playback window for the reel in the given mode.
func (e *Editor) Animate(mode anim.Mode) error {
	cfg := e.session.Config()
	h, err := anim.NewHandoff(mode, cfg.Width, cfg.Height, e.session.Frames().Frames())
	if err != nil {
		e.setStatus("No frames to animate")
		return err
	}

	w := e.app.NewWindow(fmt.Sprintf("PixelReel - %s", mode))
	view := &reelView{window: w, image: canvas.NewImageFromImage(nil), status: widget.NewLabel("Loading...")}
	view.image.FillMode = canvas.ImageFillOriginal
	view.image.ScaleMode = canvas.ImageScalePixels
	w.SetContent(container.NewBorder(nil, view.status, nil, nil, container.NewScroll(view.image)))
	w.Resize(fyne.NewSize(float32(cfg.Width)+20, float32(cfg.Height)+60))

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(cancel)
	go view.run(ctx, anim.Send(h))
	w.Show()
	return nil
}

func (v *reelView) run(ctx context.Context, inbox <-chan anim.Handoff) {
	h, frames, err := anim.Receive(inbox)
	if err != nil {
		log.Printf("[ANIM] %v", err)
		v.show(nil, "Could not read frames")
		return
	}

	switch h.Mode {
	case anim.ModeSideBySide:
		v.show(anim.Strip(frames, h.Width, h.Height), fmt.Sprintf("%d frames side by side", len(frames)))
	default:
		fade := anim.NewFade(frames, anim.FrameDuration)
		err := fade.Play(ctx, fadeTick, func(i int, img *image.RGBA) {
			v.show(img, fmt.Sprintf("Frame %d of %d", i+1, len(frames)))
		})
		if errors.Is(err, context.Canceled) {
			return
		}
		v.show(image.NewRGBA(image.Rect(0, 0, h.Width, h.Height)), "Playback finished")
	}
}

// show swaps the displayed image from the playback goroutine. A nil image keeps the current one.
func (v *reelView) show(img image.Image, status string) {
	fyne.Do(func() {
		if img != nil {
			v.image.Image = img
			v.image.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
			v.image.Refresh()
		}
		v.status.SetText(status)
	})
}
