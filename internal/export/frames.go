package export

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"PixelReel/internal/state"
)

// Dir is a destination that can create named files.
type Dir interface {
	Create(name string) (io.WriteCloser, error)
}

// OSDir writes into a directory on the local filesystem.
type OSDir string

func (d OSDir) Create(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(string(d), name))
}

// FrameName is the file name of the 1-based frame i.
func FrameName(i int) string {
	return fmt.Sprintf("canvas_%d.png", i)
}

// WriteFrames writes one PNG per frame, named by 1-based position.
func WriteFrames(dir Dir, frames []state.Snapshot) error {
	if len(frames) == 0 {
		log.Println("[EXPORT] No frames to export!")
		return state.ErrEmptyReel
	}
	for i, frame := range frames {
		if err := writeFrame(dir, FrameName(i+1), frame); err != nil {
			return err
		}
	}
	log.Printf("[EXPORT] All %d frames exported", len(frames))
	return nil
}

func writeFrame(dir Dir, name string, frame state.Snapshot) error {
	data, err := frame.PNG()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	w, err := dir.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return w.Close()
}
