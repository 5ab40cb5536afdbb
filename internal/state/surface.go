package state

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Surface is the raster the user paints on. Cells are filled through a gg
// context sharing the same pixel buffer; clears write transparent pixels directly.
type Surface struct {
	mu         sync.Mutex
	img        *image.RGBA
	dc         *gg.Context
	ink        color.Color
	generation uint64
	restoring  sync.WaitGroup
}

func NewSurface(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{
		img: img,
		dc:  gg.NewContextForRGBA(img),
		ink: color.Black,
	}
}

func (s *Surface) Width() int  { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// FillRect paints a rectangle with the ink color. Parts outside the surface are dropped.
func (s *Surface) FillRect(x, y, w, h int) {
	s.lockForWrite()
	defer s.mu.Unlock()
	if !image.Rect(x, y, x+w, y+h).Overlaps(s.img.Bounds()) {
		return
	}
	s.dc.SetColor(s.ink)
	s.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	s.dc.Fill()
}

// ClearRect makes a rectangle fully transparent.
func (s *Surface) ClearRect(x, y, w, h int) {
	s.lockForWrite()
	defer s.mu.Unlock()
	s.clear(image.Rect(x, y, x+w, y+h))
}

// Clear wipes the whole surface.
func (s *Surface) Clear() {
	s.lockForWrite()
	defer s.mu.Unlock()
	s.clear(s.img.Bounds())
}

// lockForWrite waits for pending restores to land, then takes the lock and
// retires their generation so a direct paint is never drawn over.
func (s *Surface) lockForWrite() {
	s.restoring.Wait()
	s.mu.Lock()
	s.generation++
}

func (s *Surface) clear(r image.Rectangle) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Capture encodes the current pixels into a snapshot once pending restores have landed.
func (s *Surface) Capture() (Snapshot, error) {
	s.restoring.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("capture surface: %w", err)
	}
	return snapshotFromPNG(buf.Bytes()), nil
}

// Restore replaces the surface contents with a snapshot. Decoding happens on a
// goroutine; the returned channel yields once the pixels are in place or the
// decode failed. A restore superseded by a later one completes without drawing.
// Paints and captures issued meanwhile wait for it.
func (s *Surface) Restore(snap Snapshot) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.restoring.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.restoring.Done()
		img, err := snap.Decode()
		if err != nil {
			done <- err
			return
		}
		s.mu.Lock()
		if gen == s.generation {
			draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
			s.dc.DrawImage(img, 0, 0)
		}
		s.mu.Unlock()
		done <- nil
	}()
	return done
}
