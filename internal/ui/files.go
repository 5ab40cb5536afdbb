package ui

import (
	"fmt"
	"io"
	"log"

	"PixelReel/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// uriDir lets the exporters write into a folder picked through Fyne's dialogs.
type uriDir struct {
	dir fyne.ListableURI
}

var _ export.Dir = uriDir{}

func (d uriDir) Create(name string) (io.WriteCloser, error) {
	child, err := storage.Child(d.dir, name)
	if err != nil {
		return nil, err
	}
	return storage.Writer(child)
}

// writeTo runs write against a dialog-provided writer and reports the outcome
// in the status bar. A failed write removes the file the dialog created.
func (e *Editor) writeTo(writer fyne.URIWriteCloser, what string, write func(io.Writer) error) error {
	err := write(writer)
	if cerr := writer.Close(); cerr != nil {
		log.Printf("Error closing writer: %v", cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		log.Printf("[UI] Saving %s to %s failed: %v", what, writer.URI(), err)
		if derr := storage.Delete(writer.URI()); derr != nil {
			log.Printf("[UI] Could not remove %s: %v", writer.URI(), derr)
		}
		e.setStatus(fmt.Sprintf("Error saving %s", what))
		return err
	}
	e.setStatus(fmt.Sprintf("Saved %s to %s", what, writer.URI().Name()))
	return nil
}

// SaveSurface writes the current surface as a PNG.
func (e *Editor) SaveSurface(writer fyne.URIWriteCloser) error {
	return e.writeTo(writer, "canvas", e.session.SaveSurface)
}

// ExportArchive writes the reel as a JSON archive.
func (e *Editor) ExportArchive(writer fyne.URIWriteCloser) error {
	frames := e.session.Frames().Frames()
	return e.writeTo(writer, fmt.Sprintf("%d frames", len(frames)), func(w io.Writer) error {
		return export.WriteArchive(w, frames)
	})
}

func (e *Editor) ExportPDF(writer fyne.URIWriteCloser) error {
	frames := e.session.Frames().Frames()
	return e.writeTo(writer, "contact sheet", func(w io.Writer) error {
		return export.WritePDF(w, frames)
	})
}

func (e *Editor) ExportAPNG(writer fyne.URIWriteCloser) error {
	frames := e.session.Frames().Frames()
	return e.writeTo(writer, "animation", func(w io.Writer) error {
		return export.WriteAPNG(w, frames, FrameDelay)
	})
}

// ExportFrames writes every reel frame as its own PNG into dir.
func (e *Editor) ExportFrames(dir fyne.ListableURI) error {
	frames := e.session.Frames().Frames()
	if err := export.WriteFrames(uriDir{dir: dir}, frames); err != nil {
		e.setStatus(fmt.Sprintf("Export failed: %v", err))
		return err
	}
	e.setStatus(fmt.Sprintf("Exported %d frames to %s", len(frames), dir.Name()))
	return nil
}

// ImportArchive replaces the reel with the contents of a JSON archive. The
// reel is untouched when the file is not a valid archive.
func (e *Editor) ImportArchive(reader fyne.URIReadCloser) error {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("Error closing reader: %v", err)
		}
	}()

	e.setStatus("Loading file...")
	if err := export.ImportArchive(reader, e.session.Frames()); err != nil {
		log.Printf("[UI] Import of %s failed: %v", reader.URI(), err)
		e.setStatus("Error parsing file - invalid format")
		return err
	}
	e.refreshFrameCount()
	e.setStatus(fmt.Sprintf("Imported %d frames", e.session.Frames().Len()))
	return nil
}
