package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"PixelReel/internal/state"
)

const (
	ArchiveName = "canvasArray.json"
	SurfaceName = "canvas.png"
)

// WriteArchive writes the reel as a JSON array of snapshot strings.
func WriteArchive(w io.Writer, frames []state.Snapshot) error {
	if frames == nil {
		frames = []state.Snapshot{}
	}
	data, err := json.MarshalIndent(frames, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	log.Printf("[EXPORT] Wrote archive with %d frames", len(frames))
	return nil
}

// ReadArchive parses an archive and checks every entry decodes to an image.
// Nothing is returned unless the whole document is usable.
func ReadArchive(r io.Reader) ([]state.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}
	frames := make([]state.Snapshot, 0, len(raw))
	for i, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("archive entry %d is not a string: %w", i+1, state.ErrInvalidSnapshot)
		}
		snap := state.Snapshot(s)
		if _, err := snap.Decode(); err != nil {
			return nil, fmt.Errorf("archive entry %d: %w", i+1, err)
		}
		frames = append(frames, snap)
	}
	return frames, nil
}

// ImportArchive replaces the reel with the archive contents. The reel is left
// as it was when the archive is unusable.
func ImportArchive(r io.Reader, store *state.FrameStore) error {
	frames, err := ReadArchive(r)
	if err != nil {
		return err
	}
	if err := store.Replace(frames); err != nil {
		return err
	}
	log.Printf("[EXPORT] Imported %d frames from archive", len(frames))
	return nil
}
