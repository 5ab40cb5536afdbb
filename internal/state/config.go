package state

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth    = 900
	DefaultHeight   = 900
	DefaultCellSize = 30
)

// ErrInvalidCellSize is returned for cell sizes smaller than one pixel.
var ErrInvalidCellSize = errors.New("cell size must be at least 1")

// Config holds the surface geometry for a session.
type Config struct {
	Width    int
	Height   int
	CellSize int
}

func DefaultConfig() Config {
	return Config{Width: DefaultWidth, Height: DefaultHeight, CellSize: DefaultCellSize}
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("surface size %dx%d is not positive", c.Width, c.Height)
	}
	if c.CellSize < 1 {
		return ErrInvalidCellSize
	}
	return nil
}
