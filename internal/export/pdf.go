package export

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"PixelReel/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const PDFName = "canvasArray.pdf"

// WritePDF lays the reel out as a contact sheet, one captioned frame per page.
func WritePDF(w io.Writer, frames []state.Snapshot) error {
	if len(frames) == 0 {
		log.Println("[EXPORT] No frames to export!")
		return state.ErrEmptyReel
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("PixelReel frames", true)
	p.SetCreator("PixelReel", true)
	p.SetFont("Helvetica", "", 12)
	pageW, _ := p.GetPageSize()
	side := pageW - 30

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, frame := range frames {
		data, err := frame.PNG()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		name := fmt.Sprintf("frame-%d", i+1)
		p.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))

		p.AddPage()
		p.ImageOptions(name, 15, 20, side, 0, false, opts, 0, "")
		p.Text(15, 15, fmt.Sprintf("Frame %d of %d", i+1, len(frames)))
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Printf("[EXPORT] Wrote PDF contact sheet with %d pages", len(frames))
	return nil
}
