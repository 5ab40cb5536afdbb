package state

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	snap, err := EncodeSnapshot(img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(snap), "data:image/png;base64,"))

	out, err := snap.Decode()
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())
	r, g, b, a := out.At(2, 1).RGBA()
	assert.Equal(t, []uint32{10 * 0x101, 20 * 0x101, 30 * 0x101, 0xffff}, []uint32{r, g, b, a})
}

func TestSnapshotDecodeRejectsGarbage(t *testing.T) {
	for name, s := range map[string]Snapshot{
		"empty":      "",
		"not a url":  "hello",
		"not base64": "data:image/png;base64,@@@",
		"plain text": "data:image/png,abc",
		"not png":    "data:image/png;base64,aGVsbG8=",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Decode()
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestSurfaceCaptureRestore(t *testing.T) {
	s := NewSurface(20, 20)
	s.FillRect(0, 0, 10, 10)
	snap, err := s.Capture()
	require.NoError(t, err)

	s.Clear()
	assert.Equal(t, uint8(0), s.Image().RGBAAt(5, 5).A)

	waitDone(t, s.Restore(snap))
	assert.Equal(t, uint8(255), s.Image().RGBAAt(5, 5).A)
	assert.Equal(t, uint8(0), s.Image().RGBAAt(15, 15).A)
}

func TestSurfaceStaleRestoreDoesNotDraw(t *testing.T) {
	s := NewSurface(20, 20)
	s.FillRect(0, 0, 10, 10)
	painted, err := s.Capture()
	require.NoError(t, err)
	s.Clear()
	blank, err := s.Capture()
	require.NoError(t, err)

	first := s.Restore(painted)
	second := s.Restore(blank)
	waitDone(t, first)
	waitDone(t, second)

	assert.Equal(t, uint8(0), s.Image().RGBAAt(5, 5).A)
}

func TestSurfaceRestoreReportsBadSnapshot(t *testing.T) {
	s := NewSurface(4, 4)
	err := <-s.Restore("data:image/png;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestUndoStackNeverPopsLastEntry(t *testing.T) {
	u := NewUndoStack()
	_, ok := u.Pop()
	assert.False(t, ok)

	u.Push("a")
	u.Push("b")
	top, ok := u.Pop()
	assert.True(t, ok)
	assert.Equal(t, Snapshot("a"), top)

	_, ok = u.Pop()
	assert.False(t, ok)
	assert.Equal(t, 1, u.Len())
}
