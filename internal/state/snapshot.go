package state

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const snapshotPrefix = "data:image/png;base64,"

// ErrInvalidSnapshot is returned when a snapshot string cannot be turned back into pixels.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is a self-contained data URL holding a PNG of the whole surface.
type Snapshot string

// EncodeSnapshot turns an image into a data URL snapshot.
func EncodeSnapshot(img image.Image) (Snapshot, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return snapshotFromPNG(buf.Bytes()), nil
}

func snapshotFromPNG(data []byte) Snapshot {
	return Snapshot(snapshotPrefix + base64.StdEncoding.EncodeToString(data))
}

// PNG returns the raw PNG bytes carried by the snapshot.
func (s Snapshot) PNG() ([]byte, error) {
	raw := string(s)
	comma := strings.IndexByte(raw, ',')
	if !strings.HasPrefix(raw, "data:image/") || comma < 0 {
		return nil, fmt.Errorf("%w: not an image data URL", ErrInvalidSnapshot)
	}
	if !strings.HasSuffix(raw[:comma], ";base64") {
		return nil, fmt.Errorf("%w: payload is not base64", ErrInvalidSnapshot)
	}
	data, err := base64.StdEncoding.DecodeString(raw[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return data, nil
}

// Decode parses the snapshot back into an image.
func (s Snapshot) Decode() (image.Image, error) {
	data, err := s.PNG()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return img, nil
}

// DecodeAll decodes every snapshot in order, failing on the first bad one.
func DecodeAll(snaps []Snapshot) ([]image.Image, error) {
	images := make([]image.Image, 0, len(snaps))
	for i, snap := range snaps {
		img, err := snap.Decode()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
