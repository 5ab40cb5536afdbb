package ui

import (
	"image/color"
	"log"

	"PixelReel/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// GridWidget shows the session surface one canvas unit per pixel and turns
// primary-button mouse input into cell paints.
type GridWidget struct {
	widget.BaseWidget
	session     *state.Session
	image       *canvas.Image
	OnStrokeEnd func()
}

var _ fyne.Widget = (*GridWidget)(nil)
var _ fyne.Draggable = (*GridWidget)(nil)
var _ desktop.Mouseable = (*GridWidget)(nil)
var _ desktop.Hoverable = (*GridWidget)(nil)

func NewGridWidget(s *state.Session) *GridWidget {
	img := canvas.NewImageFromImage(s.Surface().Image())
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels

	g := &GridWidget{session: s, image: img}
	g.ExtendBaseWidget(g)
	return g
}

func (g *GridWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	g.session.PointerDown(e.Position.X, e.Position.Y)
	g.Refresh()
}

func (g *GridWidget) MouseMoved(e *desktop.MouseEvent) {
	if !g.session.Drawing() {
		return
	}
	g.session.PointerMove(e.Position.X, e.Position.Y)
	g.Refresh()
}

func (g *GridWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		g.endStroke()
	}
}

func (g *GridWidget) Dragged(e *fyne.DragEvent) {
	g.session.PointerMove(e.Position.X, e.Position.Y)
	g.Refresh()
}

// DragEnd also closes the stroke; the release may arrive here instead of MouseUp.
func (g *GridWidget) DragEnd() {
	g.endStroke()
}

func (g *GridWidget) endStroke() {
	if !g.session.Drawing() {
		return
	}
	if err := g.session.PointerUp(); err != nil {
		log.Printf("[UI] Could not record stroke for undo: %v", err)
	}
	g.Refresh()
	if g.OnStrokeEnd != nil {
		g.OnStrokeEnd()
	}
}

func (g *GridWidget) MouseIn(*desktop.MouseEvent) {}
func (g *GridWidget) MouseOut()                   {}

func (g *GridWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	return &gridRenderer{grid: g, background: bg}
}

type gridRenderer struct {
	grid       *GridWidget
	background *canvas.Rectangle
}

func (r *gridRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.grid.image}
}

func (r *gridRenderer) Refresh() {
	r.grid.image.Image = r.grid.session.Surface().Image()
	r.grid.image.Refresh()
	r.background.Refresh()
}

func (r *gridRenderer) Layout(size fyne.Size) {
	r.background.Resize(r.MinSize())
	r.grid.image.Resize(r.MinSize())
}

func (r *gridRenderer) MinSize() fyne.Size {
	cfg := r.grid.session.Config()
	return fyne.NewSize(float32(cfg.Width), float32(cfg.Height))
}

func (r *gridRenderer) Destroy() {}
