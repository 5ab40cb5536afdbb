package state

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStoreKeepsCaptureOrderAcrossReload(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	s, err := NewSession(Config{Width: 60, Height: 30, CellSize: 30}, prefs)
	require.NoError(t, err)

	const n = 4
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			s.PaintCell(5, 5)
		} else {
			s.PaintCell(35, 5)
		}
		require.NoError(t, s.AddFrame())
	}
	frames := s.Frames().Frames()
	require.Len(t, frames, n)

	reloaded := NewFrameStore(prefs)
	reloaded.Load()
	assert.Equal(t, frames, reloaded.Frames())

	var stored []string
	require.NoError(t, json.Unmarshal([]byte(prefs.String(FramesKey)), &stored))
	assert.Len(t, stored, n)
}

func TestFrameStoreClearRemovesStoredCopy(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	fs := NewFrameStore(prefs)
	require.NoError(t, fs.Add(blankSnapshot(t)))
	require.NotEmpty(t, prefs.String(FramesKey))

	fs.Clear()

	assert.Equal(t, 0, fs.Len())
	assert.Empty(t, prefs.String(FramesKey))
	_, ok := fs.Latest()
	assert.False(t, ok)
}

func TestFrameStoreReplaceIsWholesale(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	fs := NewFrameStore(prefs)
	a := blankSnapshot(t)
	require.NoError(t, fs.Add(a))
	require.NoError(t, fs.Add(a))

	require.NoError(t, fs.Replace(nil))
	assert.Equal(t, 0, fs.Len())
	assert.Equal(t, "[]", prefs.String(FramesKey))
}

func TestFrameStoreLoadToleratesCorruptValue(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	prefs.SetString(FramesKey, "{not json")
	fs := NewFrameStore(prefs)
	fs.Load()
	assert.Equal(t, 0, fs.Len())
	assert.NotNil(t, fs.Frames())
}

func TestFramesReturnsCopy(t *testing.T) {
	fs := NewFrameStore(test.NewTempApp(t).Preferences())
	require.NoError(t, fs.Add(blankSnapshot(t)))
	out := fs.Frames()
	out[0] = "changed"
	latest, _ := fs.Latest()
	assert.NotEqual(t, Snapshot("changed"), latest)
}

func blankSnapshot(t *testing.T) Snapshot {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.Black)
	snap, err := EncodeSnapshot(img)
	require.NoError(t, err)
	return snap
}
