package state

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Session owns everything one editor window works on: the surface, the
// drawing mode, the stroke history and the persisted reel.
type Session struct {
	ID string

	cfg      Config
	surface  *Surface
	undo     *UndoStack
	frames   *FrameStore
	eraser   bool
	drawing  bool
	cellSize int
}

// NewSession builds a session with a blank surface, loads the reel from prefs
// and records the blank surface as the first undo entry.
func NewSession(cfg Config, prefs Preferences) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		surface:  NewSurface(cfg.Width, cfg.Height),
		undo:     NewUndoStack(),
		frames:   NewFrameStore(prefs),
		cellSize: cfg.CellSize,
	}
	s.frames.Load()
	if err := s.CaptureUndoState(); err != nil {
		return nil, err
	}
	log.Printf("[SESSION] %s started on a %dx%d surface", s.ShortID(), cfg.Width, cfg.Height)
	return s, nil
}

// ShortID is the first block of the session uuid, used in window titles and logs.
func (s *Session) ShortID() string {
	id, _, _ := strings.Cut(s.ID, "-")
	return id
}

func (s *Session) Surface() *Surface   { return s.surface }
func (s *Session) Frames() *FrameStore { return s.frames }
func (s *Session) UndoDepth() int      { return s.undo.Len() }
func (s *Session) Eraser() bool        { return s.eraser }
func (s *Session) Drawing() bool       { return s.drawing }
func (s *Session) CellSize() int       { return s.cellSize }
func (s *Session) Config() Config      { return s.cfg }

// SetCellSize changes the cell size for later paints. Cells already painted keep their size.
func (s *Session) SetCellSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCellSize, n)
	}
	s.cellSize = n
	return nil
}

func (s *Session) ToggleEraser() {
	s.eraser = !s.eraser
	if s.eraser {
		log.Printf("[SESSION] %s eraser mode ON", s.ShortID())
	} else {
		log.Printf("[SESSION] %s eraser mode OFF", s.ShortID())
	}
}

// CellAt maps a surface coordinate to its cell column and row.
func (s *Session) CellAt(x, y float32) (col, row int) {
	size := float64(s.cellSize)
	return int(math.Floor(float64(x) / size)), int(math.Floor(float64(y) / size))
}

// PaintCell fills or clears the cell under (x, y) depending on eraser mode.
func (s *Session) PaintCell(x, y float32) {
	col, row := s.CellAt(x, y)
	px, py := col*s.cellSize, row*s.cellSize
	if s.eraser {
		s.surface.ClearRect(px, py, s.cellSize, s.cellSize)
	} else {
		s.surface.FillRect(px, py, s.cellSize, s.cellSize)
	}
}

func (s *Session) PointerDown(x, y float32) {
	s.drawing = true
	s.PaintCell(x, y)
}

func (s *Session) PointerMove(x, y float32) {
	if s.drawing {
		s.PaintCell(x, y)
	}
}

// PointerUp ends a stroke and records it for undo.
func (s *Session) PointerUp() error {
	if !s.drawing {
		return nil
	}
	s.drawing = false
	return s.CaptureUndoState()
}

func (s *Session) CaptureUndoState() error {
	snap, err := s.surface.Capture()
	if err != nil {
		return err
	}
	s.undo.Push(snap)
	return nil
}

// Undo drops the latest stroke and redraws the surface from the previous
// entry. With only the initial entry left it does nothing and the returned
// channel is already closed.
func (s *Session) Undo() <-chan error {
	prev, ok := s.undo.Pop()
	if !ok {
		log.Printf("[UNDO] %s nothing to undo", s.ShortID())
		return closedDone()
	}
	log.Printf("[UNDO] %s restoring stroke %d", s.ShortID(), s.undo.Len())
	return s.surface.Restore(prev)
}

// ResetCanvas clears the surface. Neither the undo history nor the reel changes.
func (s *Session) ResetCanvas() {
	s.surface.Clear()
}

// DrawEdgeCells fills every cell along the four borders.
func (s *Session) DrawEdgeCells() {
	w, h, c := s.cfg.Width, s.cfg.Height, s.cellSize
	for x := 0; x < w; x += c {
		s.surface.FillRect(x, 0, c, c)
		s.surface.FillRect(x, h-c, c, c)
	}
	for y := 0; y < h; y += c {
		s.surface.FillRect(0, y, c, c)
		s.surface.FillRect(w-c, y, c, c)
	}
}

// AddFrame captures the surface into the reel.
func (s *Session) AddFrame() error {
	snap, err := s.surface.Capture()
	if err != nil {
		return err
	}
	return s.frames.Add(snap)
}

func (s *Session) ClearFrames() {
	s.frames.Clear()
}

// LoadLatestFrame redraws the surface from the newest reel frame.
func (s *Session) LoadLatestFrame() (<-chan error, error) {
	latest, ok := s.frames.Latest()
	if !ok {
		log.Println("[FRAMES] No items in the reel!")
		return nil, ErrEmptyReel
	}
	return s.surface.Restore(latest), nil
}

// SaveSurface writes the current surface as a PNG.
func (s *Session) SaveSurface(w io.Writer) error {
	snap, err := s.surface.Capture()
	if err != nil {
		return err
	}
	data, err := snap.PNG()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write surface: %w", err)
	}
	return nil
}

func closedDone() <-chan error {
	done := make(chan error)
	close(done)
	return done
}
