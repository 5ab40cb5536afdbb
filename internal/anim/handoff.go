package anim

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"PixelReel/internal/state"

	"github.com/google/uuid"
)

type Mode int

const (
	ModeFade Mode = iota
	ModeSideBySide
)

func (m Mode) String() string {
	switch m {
	case ModeFade:
		return "fade"
	case ModeSideBySide:
		return "side-by-side"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Handoff is the message a playback view is started with. Frames travel as
// the serialized reel so the view shares no state with the editor.
type Handoff struct {
	ViewID string
	Mode   Mode
	Width  int
	Height int
	Frames []byte
}

// NewHandoff serializes the reel for a new playback view.
func NewHandoff(mode Mode, width, height int, frames []state.Snapshot) (Handoff, error) {
	if len(frames) == 0 {
		log.Println("[ANIM] No frames to animate!")
		return Handoff{}, state.ErrEmptyReel
	}
	data, err := json.Marshal(frames)
	if err != nil {
		return Handoff{}, fmt.Errorf("serialize reel: %w", err)
	}
	return Handoff{
		ViewID: uuid.NewString(),
		Mode:   mode,
		Width:  width,
		Height: height,
		Frames: data,
	}, nil
}

// Send delivers h on a fresh channel the view reads exactly once.
func Send(h Handoff) <-chan Handoff {
	ch := make(chan Handoff, 1)
	ch <- h
	close(ch)
	return ch
}

// Receive is the playback view's entry point: it takes the handoff off the
// channel and decodes its frames.
func Receive(ch <-chan Handoff) (Handoff, []image.Image, error) {
	h, ok := <-ch
	if !ok {
		return Handoff{}, nil, fmt.Errorf("handoff channel closed before delivery")
	}
	var frames []state.Snapshot
	if err := json.Unmarshal(h.Frames, &frames); err != nil {
		return h, nil, fmt.Errorf("decode handoff %s: %w", h.ViewID, err)
	}
	images, err := state.DecodeAll(frames)
	if err != nil {
		return h, nil, fmt.Errorf("handoff %s: %w", h.ViewID, err)
	}
	log.Printf("[ANIM] View %s received %d frames (%s)", h.ViewID, len(images), h.Mode)
	return h, images, nil
}
