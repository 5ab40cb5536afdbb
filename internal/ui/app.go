package ui

import (
	"fmt"
	"log"
	"time"

	"PixelReel/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	AppID       = "io.pixelreel.app"
	CellSizeKey = "cellSize"
	// FrameDelay is how long each frame is held in animated exports.
	FrameDelay = time.Second
)

// Editor ties one session to its window: the grid, the toolbar and the status bar.
type Editor struct {
	app        fyne.App
	window     fyne.Window
	session    *state.Session
	grid       *GridWidget
	statusBar  *widget.Label
	frameCount *widget.Label
}

func NewEditor(a fyne.App, w fyne.Window, s *state.Session) *Editor {
	e := &Editor{
		app:        a,
		window:     w,
		session:    s,
		grid:       NewGridWidget(s),
		statusBar:  widget.NewLabel("Ready"),
		frameCount: widget.NewLabel(""),
	}
	e.grid.OnStrokeEnd = e.strokeEnded
	w.SetTitle(WindowTitle(s))
	e.refreshFrameCount()
	return e
}

// WindowTitle names the editor window after its session so several open
// editors, and their log lines, can be told apart.
func WindowTitle(s *state.Session) string {
	return "PixelReel " + s.ShortID()
}

func (e *Editor) strokeEnded() {
	e.setStatus(fmt.Sprintf("Stroke recorded. Undo steps: %d", e.session.UndoDepth()-1))
}

// Content builds the window layout: toolbar on top, status along the bottom.
func (e *Editor) Content() fyne.CanvasObject {
	status := container.NewHBox(e.statusBar, e.frameCount)
	board := container.NewScroll(e.grid)
	return container.NewBorder(NewToolbar(e), status, nil, nil, board)
}

// TypedKey handles editor shortcuts. Backspace undoes the last stroke.
func (e *Editor) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyBackspace {
		e.Undo()
	}
}

func (e *Editor) setStatus(text string) {
	e.statusBar.SetText(text)
}

func (e *Editor) refreshFrameCount() {
	e.frameCount.SetText(fmt.Sprintf("Frames: %d", e.session.Frames().Len()))
}

// awaitRedraw refreshes the grid once an asynchronous restore lands.
func (e *Editor) awaitRedraw(done <-chan error, what string) {
	go func() {
		err := <-done
		fyne.Do(func() {
			if err != nil {
				log.Printf("[UI] %s failed: %v", what, err)
				e.setStatus(fmt.Sprintf("%s failed", what))
			}
			e.grid.Refresh()
		})
	}()
}

func (e *Editor) Undo() {
	if e.session.UndoDepth() <= 1 {
		e.setStatus("Nothing to undo")
		return
	}
	e.awaitRedraw(e.session.Undo(), "Undo")
}

func (e *Editor) ToggleEraser() {
	e.session.ToggleEraser()
	if e.session.Eraser() {
		e.setStatus("Eraser mode ON")
	} else {
		e.setStatus("Eraser mode OFF")
	}
}

func (e *Editor) SetCellSize(n int) {
	if err := e.session.SetCellSize(n); err != nil {
		e.setStatus(err.Error())
		return
	}
	e.app.Preferences().SetInt(CellSizeKey, n)
}

func (e *Editor) ResetCanvas() {
	e.session.ResetCanvas()
	e.grid.Refresh()
}

func (e *Editor) DrawEdgeCells() {
	e.session.DrawEdgeCells()
	e.grid.Refresh()
}

func (e *Editor) AddFrame() {
	if err := e.session.AddFrame(); err != nil {
		log.Printf("[UI] Add frame failed: %v", err)
		e.setStatus("Could not add frame")
		return
	}
	e.refreshFrameCount()
	e.setStatus(fmt.Sprintf("Frame added. Total frames: %d", e.session.Frames().Len()))
}

func (e *Editor) ClearFrames() {
	e.session.ClearFrames()
	e.refreshFrameCount()
	e.setStatus("Reel cleared")
}

func (e *Editor) LoadLatestFrame() {
	done, err := e.session.LoadLatestFrame()
	if err != nil {
		e.setStatus("No frames in the reel")
		return
	}
	e.awaitRedraw(done, "Loading latest frame")
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(cfg state.Config) error {
	a := app.NewWithID(AppID)
	if cfg.CellSize == 0 {
		cfg.CellSize = a.Preferences().IntWithFallback(CellSizeKey, state.DefaultCellSize)
	}
	session, err := state.NewSession(cfg, a.Preferences())
	if err != nil {
		return err
	}

	w := a.NewWindow(WindowTitle(session))
	w.Resize(fyne.NewSize(float32(cfg.Width)+40, float32(cfg.Height)+120))
	editor := NewEditor(a, w, session)
	w.SetContent(editor.Content())
	w.Canvas().SetOnTypedKey(editor.TypedKey)
	w.ShowAndRun()
	return nil
}
