package ui

import (
	"fmt"

	"PixelReel/internal/anim"
	"PixelReel/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the editing controls and the reel controls for e.
func NewToolbar(e *Editor) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), e.Undo),
		widget.NewToolbarAction(theme.ContentClearIcon(), e.ResetCanvas),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), e.DrawEdgeCells),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), e.showSaveSurface),
	)

	eraser := widget.NewCheck("Eraser", func(on bool) {
		if on != e.session.Eraser() {
			e.ToggleEraser()
		}
	})

	// --- Cell Size ---
	cellLabel := widget.NewLabel(fmt.Sprintf("%d px", e.session.CellSize()))
	cellSlider := widget.NewSlider(1, 100)
	cellSlider.Step = 1
	cellSlider.SetValue(float64(e.session.CellSize()))
	cellSlider.OnChanged = func(val float64) {
		e.SetCellSize(int(val))
		cellLabel.SetText(fmt.Sprintf("%d px", e.session.CellSize()))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), cellSlider)

	// --- Reel ---
	addFrame := widget.NewButtonWithIcon("Add frame", theme.ContentAddIcon(), e.AddFrame)
	loadLatest := widget.NewButtonWithIcon("Load latest", theme.HistoryIcon(), e.LoadLatestFrame)
	clearReel := widget.NewButtonWithIcon("Clear reel", theme.DeleteIcon(), e.confirmClearFrames)
	play := widget.NewButtonWithIcon("Play", theme.MediaPlayIcon(), func() { e.Animate(anim.ModeFade) })
	sideBySide := widget.NewButtonWithIcon("Side by side", theme.ViewRestoreIcon(), func() { e.Animate(anim.ModeSideBySide) })
	exports := widget.NewButtonWithIcon("Export", theme.DownloadIcon(), nil)
	exports.OnTapped = func() {
		menu := fyne.NewMenu("",
			fyne.NewMenuItem("Reel as JSON...", e.showExportArchive),
			fyne.NewMenuItem("Import JSON...", e.showImportArchive),
			fyne.NewMenuItem("Each frame as PNG...", e.showExportFrames),
			fyne.NewMenuItem("Contact sheet PDF...", e.showExportPDF),
			fyne.NewMenuItem("Animated PNG...", e.showExportAPNG),
		)
		pos := e.app.Driver().AbsolutePositionForObject(exports)
		widget.ShowPopUpMenuAtPosition(menu, e.window.Canvas(), pos.AddXY(0, exports.Size().Height))
	}

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		eraser,
		widget.NewSeparator(),
		widget.NewLabel("Cell:"),
		sliderContainer,
		cellLabel,
		widget.NewSeparator(),
		addFrame,
		loadLatest,
		clearReel,
		play,
		sideBySide,
		exports,
		layout.NewSpacer(),
	)
}

func (e *Editor) confirmClearFrames() {
	dialog.ShowConfirm("Clear reel", "Remove every saved frame? This cannot be undone.", func(ok bool) {
		if ok {
			e.ClearFrames()
		}
	}, e.window)
}

func (e *Editor) showSave(name string, save func(fyne.URIWriteCloser) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if writer == nil {
			return
		}
		if err := save(writer); err != nil {
			dialog.ShowError(err, e.window)
		}
	}, e.window)
	d.SetFileName(name)
	d.Show()
}

func (e *Editor) showSaveSurface()   { e.showSave(export.SurfaceName, e.SaveSurface) }
func (e *Editor) showExportArchive() { e.showSave(export.ArchiveName, e.ExportArchive) }

func (e *Editor) showExportPDF() {
	if e.reelEmpty() {
		return
	}
	e.showSave(export.PDFName, e.ExportPDF)
}

func (e *Editor) showExportAPNG() {
	if e.reelEmpty() {
		return
	}
	e.showSave(export.AnimationName, e.ExportAPNG)
}

// reelEmpty reports an empty reel in the status bar so no file dialog is opened for it.
func (e *Editor) reelEmpty() bool {
	if e.session.Frames().Len() > 0 {
		return false
	}
	e.setStatus("No frames to export")
	return true
}

func (e *Editor) showImportArchive() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if reader == nil {
			return
		}
		if err := e.ImportArchive(reader); err != nil {
			dialog.ShowError(err, e.window)
		}
	}, e.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (e *Editor) showExportFrames() {
	if e.reelEmpty() {
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if dir == nil {
			return
		}
		if err := e.ExportFrames(dir); err != nil {
			dialog.ShowError(err, e.window)
		}
	}, e.window)
}
