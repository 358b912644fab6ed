package overlay

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// EnvironmentValue is the tagged configuration of the environment overlay:
// EnvOff, EnvOn, EnvColor, Location, Point, EnvironmentOptions or EnvHandler.
type EnvironmentValue interface {
	isEnvironmentValue()
}

// EnvOff disables the environment overlay.
type EnvOff struct{}

// EnvOn enables it with default options.
type EnvOn struct{}

// EnvColor enables it with a custom text colour for both themes.
type EnvColor string

// EnvHandler replaces the environment drawing entirely.
type EnvHandler Handler

// Location is a preset corner for the environment box.
type Location string

const (
	TopLeft     Location = "top-left"
	TopRight    Location = "top-right"
	BottomLeft  Location = "bottom-left"
	BottomRight Location = "bottom-right"
)

// ParseLocation accepts "top-left", "topLeft", "TOP_LEFT" and so on.
func ParseLocation(s string) (Location, bool) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "topleft":
		return TopLeft, true
	case "topright":
		return TopRight, true
	case "bottomleft":
		return BottomLeft, true
	case "bottomright":
		return BottomRight, true
	}
	return "", false
}

// Point is an explicit position for the environment box (top-left corner).
type Point struct {
	X float64 `mapstructure:"x" yaml:"x" json:"x"`
	Y float64 `mapstructure:"y" yaml:"y" json:"y"`
}

// EnvironmentOptions configures the environment overlay.
// Zero fields fall back to the defaults.
type EnvironmentOptions struct {
	Location       Location `mapstructure:"location" yaml:"location,omitempty" json:"location,omitempty"`
	Coordinate     *Point   `mapstructure:"coordinate" yaml:"coordinate,omitempty" json:"coordinate,omitempty"`
	Color          string   `mapstructure:"color" yaml:"color,omitempty" json:"color,omitempty"`
	DarkColor      string   `mapstructure:"dark_color" yaml:"dark_color,omitempty" json:"dark_color,omitempty"`
	Background     string   `mapstructure:"background" yaml:"background,omitempty" json:"background,omitempty"`
	DarkBackground string   `mapstructure:"dark_background" yaml:"dark_background,omitempty" json:"dark_background,omitempty"`
	Padding        float64  `mapstructure:"padding" yaml:"padding,omitempty" json:"padding,omitempty"`
	LineHeight     float64  `mapstructure:"line_height" yaml:"line_height,omitempty" json:"line_height,omitempty"`
}

func (EnvOff) isEnvironmentValue()             {}
func (EnvOn) isEnvironmentValue()              {}
func (EnvColor) isEnvironmentValue()           {}
func (EnvHandler) isEnvironmentValue()         {}
func (Location) isEnvironmentValue()           {}
func (Point) isEnvironmentValue()              {}
func (EnvironmentOptions) isEnvironmentValue() {}

// DefaultEnvironmentOptions returns the environment overlay defaults.
func DefaultEnvironmentOptions() EnvironmentOptions {
	return EnvironmentOptions{
		Location:       TopLeft,
		Color:          "#1a1a1a",
		DarkColor:      "#f0f0f0",
		Background:     "#ffffffcc",
		DarkBackground: "#000000cc",
		Padding:        6,
		LineHeight:     16,
	}
}

func (o EnvironmentOptions) withDefaults() EnvironmentOptions {
	d := DefaultEnvironmentOptions()
	loc, ok := ParseLocation(string(o.Location))
	if !ok {
		loc = d.Location
	}
	return EnvironmentOptions{
		Location:       loc,
		Coordinate:     o.Coordinate,
		Color:          pick(o.Color, d.Color),
		DarkColor:      pick(o.DarkColor, d.DarkColor),
		Background:     pick(o.Background, d.Background),
		DarkBackground: pick(o.DarkBackground, d.DarkBackground),
		Padding:        pickFloat(o.Padding, d.Padding),
		LineHeight:     pickFloat(o.LineHeight, d.LineHeight),
	}
}

// Environment resolves an environment value. It returns nil when disabled.
func (r *Resolver) Environment(v EnvironmentValue) Handler {
	var opts EnvironmentOptions
	switch v := v.(type) {
	case nil, EnvOff:
		return nil
	case EnvHandler:
		return Handler(v)
	case EnvOn:
		opts = DefaultEnvironmentOptions()
	case EnvColor:
		opts = EnvironmentOptions{Color: string(v), DarkColor: string(v)}.withDefaults()
	case Location:
		opts = EnvironmentOptions{Location: v}.withDefaults()
	case Point:
		p := v
		opts = EnvironmentOptions{Coordinate: &p}.withDefaults()
	case EnvironmentOptions:
		opts = v.withDefaults()
	default:
		r.logger().Warn("unknown environment value, overlay disabled", "type", v)
		return nil
	}
	return r.drawEnvironment(opts)
}

// EnvironmentLines returns the text shown by the environment overlay.
func EnvironmentLines(dd domain.DrawData) []string {
	return []string{
		fmt.Sprintf("frame: %d", dd.Frame),
		fmt.Sprintf("fps: %.1f", dd.FPS),
		fmt.Sprintf("size: %gx%g (%gx%g)", dd.Width, dd.Height, dd.ClientWidth, dd.ClientHeight),
		fmt.Sprintf("dpr: %g", dd.PixelRatio),
		fmt.Sprintf("theme: %s", dd.Theme()),
	}
}

func (r *Resolver) drawEnvironment(opts EnvironmentOptions) Handler {
	logger := r.logger()
	return func(s ports.Surface, dd domain.DrawData) {
		lines := EnvironmentLines(dd)

		var textW float64
		for _, line := range lines {
			w, _ := s.MeasureText(line)
			textW = math.Max(textW, w)
		}
		boxW := textW + 2*opts.Padding
		boxH := float64(len(lines))*opts.LineHeight + 2*opts.Padding

		x, y, ok := boxOrigin(opts, dd, boxW, boxH)
		if !ok {
			logger.Debug("environment coordinate out of bounds, using preset",
				"x", opts.Coordinate.X, "y", opts.Coordinate.Y, "location", opts.Location)
		}

		bg, fg := opts.Background, opts.Color
		if dd.IsDarkMode {
			bg, fg = opts.DarkBackground, opts.DarkColor
		}

		s.SetFillColor(bg)
		s.Rect(x, y, boxW, boxH)
		s.Fill()

		s.SetFillColor(fg)
		for i, line := range lines {
			s.FillText(line, x+opts.Padding, y+opts.Padding+float64(i)*opts.LineHeight)
		}
	}
}

// boxOrigin places the box at the explicit coordinate when it lies on the
// surface, otherwise at the preset corner. ok is false when a coordinate
// was rejected.
func boxOrigin(opts EnvironmentOptions, dd domain.DrawData, boxW, boxH float64) (x, y float64, ok bool) {
	ok = true
	if c := opts.Coordinate; c != nil {
		if c.X >= 0 && c.Y >= 0 && dd.Contains(c.X, c.Y) {
			return c.X, c.Y, true
		}
		ok = false
	}

	right := math.Max(dd.Width-boxW, 0)
	bottom := math.Max(dd.Height-boxH, 0)
	switch opts.Location {
	case TopRight:
		return right, 0, ok
	case BottomLeft:
		return 0, bottom, ok
	case BottomRight:
		return right, bottom, ok
	default:
		return 0, 0, ok
	}
}
