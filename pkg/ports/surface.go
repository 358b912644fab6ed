package ports

// Surface is the drawable target handed to draw and filter actions.
// The engine itself only uses the graphics state verbs (Save, Restore,
// ResetTransform, Clear, Size, Resize); the drawing verbs exist for host code
// and the utility overlays.
type Surface interface {
	// Save pushes the current graphics state (transform, colours, line width, alpha).
	Save()
	// Restore pops the graphics state saved by the matching Save.
	Restore()
	// ResetTransform sets the transform back to identity.
	ResetTransform()
	// Clear erases every pixel of the surface.
	Clear()

	// Size returns the surface dimensions in device pixels.
	Size() (width, height int)
	// Resize changes the surface dimensions, discarding its content.
	Resize(width, height int) error

	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	SetAlpha(alpha float64)

	SetFillColor(color string)
	SetStrokeColor(color string)
	SetLineWidth(width float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, start, end float64)
	Rect(x, y, width, height float64)
	Fill()
	Stroke()

	// FillText draws s with its top-left corner at (x, y).
	FillText(s string, x, y float64)
	// MeasureText returns the extent FillText would cover.
	MeasureText(s string) (width, height float64)
}

// Readiness is implemented by surfaces that can be temporarily unusable
// (e.g. not yet attached to a window). A surface that does not implement it
// is always ready.
type Readiness interface {
	Ready() bool
}

// IsReady reports whether s can be drawn on this tick.
func IsReady(s Surface) bool {
	if s == nil {
		return false
	}
	if r, ok := s.(Readiness); ok {
		return r.Ready()
	}
	return true
}
