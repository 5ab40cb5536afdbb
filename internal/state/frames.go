package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
)

// FramesKey is the preferences key holding the reel as a JSON array of strings.
const FramesKey = "savedCanvasArray"

// ErrEmptyReel is returned by operations that need at least one stored frame.
var ErrEmptyReel = errors.New("no frames in the reel")

// Preferences is the durable key-value storage the reel is persisted to.
// fyne.Preferences satisfies it.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

// FrameStore is the user-curated reel of snapshots.
type FrameStore struct {
	mu     sync.RWMutex
	prefs  Preferences
	frames []Snapshot
}

func NewFrameStore(prefs Preferences) *FrameStore {
	return &FrameStore{prefs: prefs, frames: make([]Snapshot, 0)}
}

// Load reads the reel from preferences. A missing key gives an empty reel; a
// corrupt value is logged and also gives an empty reel.
func (fs *FrameStore) Load() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.frames = make([]Snapshot, 0)
	raw := fs.prefs.String(FramesKey)
	if raw == "" {
		return
	}
	var frames []Snapshot
	if err := json.Unmarshal([]byte(raw), &frames); err != nil {
		log.Printf("[FRAMES] Ignoring unreadable stored reel: %v", err)
		return
	}
	if frames != nil {
		fs.frames = frames
	}
	log.Printf("[FRAMES] Loaded %d frames from storage", len(fs.frames))
}

// Add appends a snapshot and persists the whole reel.
func (fs *FrameStore) Add(s Snapshot) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.frames = append(fs.frames, s)
	if err := fs.persist(); err != nil {
		fs.frames = fs.frames[:len(fs.frames)-1]
		return err
	}
	log.Printf("[FRAMES] Frame added. Total frames: %d", len(fs.frames))
	return nil
}

// Replace swaps the whole reel for frames and persists it.
func (fs *FrameStore) Replace(frames []Snapshot) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	prev := fs.frames
	fs.frames = append(make([]Snapshot, 0, len(frames)), frames...)
	if err := fs.persist(); err != nil {
		fs.frames = prev
		return err
	}
	return nil
}

// Clear empties the reel and removes it from storage.
func (fs *FrameStore) Clear() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.frames = make([]Snapshot, 0)
	fs.prefs.RemoveValue(FramesKey)
	log.Println("[FRAMES] Reel and stored copy cleared")
}

// Frames returns a copy of the reel in capture order.
func (fs *FrameStore) Frames() []Snapshot {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]Snapshot, len(fs.frames))
	copy(out, fs.frames)
	return out
}

func (fs *FrameStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.frames)
}

// Latest returns the most recently added frame.
func (fs *FrameStore) Latest() (Snapshot, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if len(fs.frames) == 0 {
		return "", false
	}
	return fs.frames[len(fs.frames)-1], true
}

func (fs *FrameStore) persist() error {
	data, err := json.Marshal(fs.frames)
	if err != nil {
		return fmt.Errorf("encode reel: %w", err)
	}
	fs.prefs.SetString(FramesKey, string(data))
	return nil
}
