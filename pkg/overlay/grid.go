package overlay

import (
	"math"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// DefaultGridSize is the spacing used when no valid size is configured.
const DefaultGridSize = 50.0

// MinGridSize is the smallest spacing drawn; finer grids fall back to the default.
const MinGridSize = 1.0

// GridValue is the tagged configuration of the grid overlay:
// GridOff, GridOn, GridColor, GridSize, GridOptions or GridHandler.
type GridValue interface {
	isGridValue()
}

// GridOff disables the grid.
type GridOff struct{}

// GridOn enables the grid with default options.
type GridOn struct{}

// GridColor enables the grid with a custom line colour for both themes.
type GridColor string

// GridSize enables the grid with a custom spacing.
type GridSize float64

// GridHandler replaces the grid drawing entirely.
type GridHandler Handler

// GridOptions configures the grid. Zero fields fall back to the defaults.
type GridOptions struct {
	Size      float64 `mapstructure:"size" yaml:"size,omitempty" json:"size,omitempty"`
	Color     string  `mapstructure:"color" yaml:"color,omitempty" json:"color,omitempty"`
	DarkColor string  `mapstructure:"dark_color" yaml:"dark_color,omitempty" json:"dark_color,omitempty"`
	LineWidth float64 `mapstructure:"line_width" yaml:"line_width,omitempty" json:"line_width,omitempty"`
}

func (GridOff) isGridValue()     {}
func (GridOn) isGridValue()      {}
func (GridColor) isGridValue()   {}
func (GridSize) isGridValue()    {}
func (GridHandler) isGridValue() {}
func (GridOptions) isGridValue() {}

// DefaultGridOptions returns the grid defaults.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Size:      DefaultGridSize,
		Color:     "#00000026",
		DarkColor: "#ffffff26",
		LineWidth: 1,
	}
}

// withDefaults fills every zero field from the defaults.
func (o GridOptions) withDefaults() GridOptions {
	d := DefaultGridOptions()
	return GridOptions{
		Size:      pickFloat(o.Size, d.Size),
		Color:     pick(o.Color, d.Color),
		DarkColor: pick(o.DarkColor, d.DarkColor),
		LineWidth: pickFloat(o.LineWidth, d.LineWidth),
	}
}

// Grid resolves a grid value. It returns nil when the grid is disabled.
func (r *Resolver) Grid(v GridValue) Handler {
	var opts GridOptions
	switch v := v.(type) {
	case nil, GridOff:
		return nil
	case GridHandler:
		return Handler(v)
	case GridOn:
		opts = DefaultGridOptions()
	case GridColor:
		opts = GridOptions{Color: string(v), DarkColor: string(v)}.withDefaults()
	case GridSize:
		// Keep the raw size, including invalid ones; bounds are checked per frame.
		opts = DefaultGridOptions()
		opts.Size = float64(v)
	case GridOptions:
		opts = v.withDefaults()
	default:
		r.logger().Warn("unknown grid value, grid disabled", "type", v)
		return nil
	}
	return r.drawGrid(opts)
}

func (r *Resolver) drawGrid(opts GridOptions) Handler {
	logger := r.logger()
	return func(s ports.Surface, dd domain.DrawData) {
		size := opts.Size
		if !ValidGridSize(size, dd.Width, dd.Height) {
			logger.Debug("grid size out of bounds, using default", "size", size, "default", DefaultGridSize)
			size = DefaultGridSize
		}

		color := opts.Color
		if dd.IsDarkMode {
			color = opts.DarkColor
		}
		s.SetStrokeColor(color)
		s.SetLineWidth(opts.LineWidth)

		xs, ys := GridLines(size, dd.Width, dd.Height)
		for _, x := range xs {
			s.MoveTo(x, 0)
			s.LineTo(x, dd.Height)
		}
		for _, y := range ys {
			s.MoveTo(0, y)
			s.LineTo(dd.Width, y)
		}
		s.Stroke()
	}
}

// ValidGridSize reports whether size can be used on a width x height surface:
// it must be a positive finite number not larger than both dimensions.
func ValidGridSize(size, width, height float64) bool {
	if math.IsNaN(size) || math.IsInf(size, 0) || size < MinGridSize {
		return false
	}
	return size <= width || size <= height
}

// GridLines returns the positions of the vertical (xs) and horizontal (ys)
// grid lines: every multiple of size strictly inside the surface. Sizes below
// MinGridSize yield no lines.
func GridLines(size, width, height float64) (xs, ys []float64) {
	if !(size >= MinGridSize) {
		return nil, nil
	}
	for k := 1; ; k++ {
		x := float64(k) * size
		if x >= width {
			break
		}
		xs = append(xs, x)
	}
	for k := 1; ; k++ {
		y := float64(k) * size
		if y >= height {
			break
		}
		ys = append(ys, y)
	}
	return xs, ys
}
