package ui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"PixelReel/internal/anim"
	"PixelReel/internal/export"
	"PixelReel/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	a := test.NewTempApp(t)
	s, err := state.NewSession(state.Config{Width: 60, Height: 60, CellSize: 30}, a.Preferences())
	require.NoError(t, err)
	w := a.NewWindow("PixelReel")
	e := NewEditor(a, w, s)
	w.SetContent(e.Content())
	return e
}

func press(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: button}
}

type memWriter struct {
	bytes.Buffer
	uri fyne.URI
}

func (m *memWriter) URI() fyne.URI { return m.uri }
func (m *memWriter) Close() error  { return nil }

type memReader struct {
	io.Reader
	uri fyne.URI
}

func (m *memReader) URI() fyne.URI { return m.uri }
func (m *memReader) Close() error  { return nil }

func TestGridStrokeRecordsUndo(t *testing.T) {
	e := newTestEditor(t)

	e.grid.MouseDown(press(5, 5, desktop.MouseButtonPrimary))
	e.grid.MouseMoved(press(35, 5, 0))
	e.grid.MouseUp(press(35, 5, desktop.MouseButtonPrimary))

	assert.Equal(t, 2, e.session.UndoDepth())
	img := e.session.Surface().Image()
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), img.RGBAAt(30, 0).A)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 30).A)
	assert.Equal(t, "Stroke recorded. Undo steps: 1", e.statusBar.Text)
}

func TestGridIgnoresSecondaryButton(t *testing.T) {
	e := newTestEditor(t)
	e.grid.MouseDown(press(5, 5, desktop.MouseButtonSecondary))
	assert.False(t, e.session.Drawing())
	assert.Equal(t, uint8(0), e.session.Surface().Image().RGBAAt(0, 0).A)
}

func TestGridDragEndClosesStrokeOnce(t *testing.T) {
	e := newTestEditor(t)
	e.grid.MouseDown(press(5, 5, desktop.MouseButtonPrimary))
	e.grid.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(35, 35)}})
	e.grid.DragEnd()
	e.grid.MouseUp(press(35, 35, desktop.MouseButtonPrimary))

	assert.Equal(t, 2, e.session.UndoDepth())
	assert.Equal(t, uint8(255), e.session.Surface().Image().RGBAAt(40, 40).A)
}

func TestBackspaceUndoes(t *testing.T) {
	e := newTestEditor(t)
	e.grid.MouseDown(press(5, 5, desktop.MouseButtonPrimary))
	e.grid.MouseUp(press(5, 5, desktop.MouseButtonPrimary))
	require.Equal(t, 2, e.session.UndoDepth())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, 2, e.session.UndoDepth())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, 1, e.session.UndoDepth())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, 1, e.session.UndoDepth())
	assert.Equal(t, "Nothing to undo", e.statusBar.Text)
}

func TestReelControlsUpdateCount(t *testing.T) {
	e := newTestEditor(t)
	e.AddFrame()
	e.AddFrame()
	assert.Equal(t, "Frames: 2", e.frameCount.Text)

	e.ClearFrames()
	assert.Equal(t, "Frames: 0", e.frameCount.Text)
	assert.Empty(t, e.app.Preferences().String(state.FramesKey))
}

func TestSetCellSizeIsRemembered(t *testing.T) {
	e := newTestEditor(t)
	e.SetCellSize(12)
	assert.Equal(t, 12, e.session.CellSize())
	assert.Equal(t, 12, e.app.Preferences().Int(CellSizeKey))

	e.SetCellSize(0)
	assert.Equal(t, 12, e.session.CellSize())
}

func TestToggleEraserReportsMode(t *testing.T) {
	e := newTestEditor(t)
	e.ToggleEraser()
	assert.True(t, e.session.Eraser())
	assert.Equal(t, "Eraser mode ON", e.statusBar.Text)
}

func TestAnimateWithEmptyReel(t *testing.T) {
	e := newTestEditor(t)
	assert.ErrorIs(t, e.Animate(anim.ModeFade), state.ErrEmptyReel)
	assert.Equal(t, "No frames to animate", e.statusBar.Text)
}

func TestArchiveExportImport(t *testing.T) {
	e := newTestEditor(t)
	e.AddFrame()
	e.session.PaintCell(5, 5)
	e.AddFrame()
	want := e.session.Frames().Frames()

	out := &memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), export.ArchiveName))}
	require.NoError(t, e.ExportArchive(out))

	e.ClearFrames()
	in := &memReader{Reader: bytes.NewReader(out.Bytes()), uri: out.uri}
	require.NoError(t, e.ImportArchive(in))
	assert.Equal(t, want, e.session.Frames().Frames())
	assert.Equal(t, "Frames: 2", e.frameCount.Text)
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	e := newTestEditor(t)
	e.AddFrame()

	in := &memReader{Reader: strings.NewReader("not json"), uri: storage.NewFileURI("/tmp/bad.json")}
	assert.Error(t, e.ImportArchive(in))
	assert.Equal(t, 1, e.session.Frames().Len())
	assert.Equal(t, "Error parsing file - invalid format", e.statusBar.Text)
}

func TestWindowTitleCarriesSession(t *testing.T) {
	e := newTestEditor(t)
	id := e.session.ShortID()
	assert.Len(t, id, 8)
	assert.Equal(t, "PixelReel "+id, e.window.Title())
}

func TestExportOfEmptyReelLeavesNoFile(t *testing.T) {
	for name, exportTo := range map[string]func(*Editor, fyne.URIWriteCloser) error{
		"pdf":  (*Editor).ExportPDF,
		"apng": (*Editor).ExportAPNG,
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestEditor(t)
			path := filepath.Join(t.TempDir(), "reel."+name)
			writer, err := storage.Writer(storage.NewFileURI(path))
			require.NoError(t, err)

			assert.ErrorIs(t, exportTo(e, writer), state.ErrEmptyReel)
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err), "empty export left %s behind", path)
		})
	}
}

func TestExportDialogsRefuseEmptyReel(t *testing.T) {
	e := newTestEditor(t)
	for _, show := range []func(){e.showExportPDF, e.showExportAPNG, e.showExportFrames} {
		e.setStatus("Ready")
		show()
		assert.Equal(t, "No frames to export", e.statusBar.Text)
	}
}
