// Package player renders tiles with mpv.
//
// Each tile gets its own mpv process reading the stream from standard input. A pump
// goroutine per tile drives the media callbacks exactly as a native engine would:
// Open once, Read until it returns 0 or a negative status, then Close. Audio state is
// changed over mpv's JSON IPC socket.
package player

import (
	"fmt"

	"github.com/mosaic-cli/mosaic/grid"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/spf13/viper"
)

// Screen is the pixel area the tile grid is laid out on.
type Screen struct {
	Width, Height int
}

// ScreenFromConfig reads the layout area from the settings.
func ScreenFromConfig() Screen {
	return Screen{
		Width:  viper.GetInt(key.PlayerScreenWidth),
		Height: viper.GetInt(key.PlayerScreenHeight),
	}
}

// Geometry returns the mpv --geometry value for a placement. Rows grow downwards and
// columns to the right.
func (s Screen) Geometry(at grid.Placement) string {
	side := max(at.Side, 1)
	w, h := s.Width/side, s.Height/side
	return fmt.Sprintf("%dx%d+%d+%d", w, h, at.Y*w, at.X*h)
}
