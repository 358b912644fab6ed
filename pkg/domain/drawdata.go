package domain

import "fmt"

// DrawData is the per-frame snapshot passed to every pipeline stage.
// It is built fresh by the scheduler on each produced frame and handed out by
// value, so no stage can change what a sibling stage observes.
type DrawData struct {
	Frame        int     `json:"frame"`
	FPS          float64 `json:"fps"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	ClientWidth  float64 `json:"client_width"`
	ClientHeight float64 `json:"client_height"`
	PixelRatio   float64 `json:"pixel_ratio"`
	IsDarkMode   bool    `json:"is_dark_mode"`
}

// InitData is handed to the initialisation hook on the first tick after
// creation or reset.
type InitData struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
	IsDarkMode bool    `json:"is_dark_mode"`
}

// NewDrawData derives the client (CSS-like) size from the pixel size and ratio.
// A non-positive ratio is treated as 1.
func NewDrawData(state FrameState, width, height int, env InitData) DrawData {
	ratio := env.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	w, h := float64(width), float64(height)
	return DrawData{
		Frame:        state.FrameCount,
		FPS:          state.FPS,
		Width:        w,
		Height:       h,
		ClientWidth:  w / ratio,
		ClientHeight: h / ratio,
		PixelRatio:   ratio,
		IsDarkMode:   env.IsDarkMode,
	}
}

// Theme returns "dark" or "light".
func (d DrawData) Theme() string {
	if d.IsDarkMode {
		return "dark"
	}
	return "light"
}

// Contains reports whether the point lies on the surface.
func (d DrawData) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= d.Width && y <= d.Height
}

func (d DrawData) String() string {
	return fmt.Sprintf("frame=%d fps=%.1f size=%gx%g", d.Frame, d.FPS, d.Width, d.Height)
}
