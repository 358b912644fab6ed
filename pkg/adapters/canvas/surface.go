// Package canvas implements ports.Surface on a gg software rasterizer.
//
// gg's Push/Pop only cover the transform, clip and mask, and its fill and
// stroke share one brush. The surface therefore keeps its own stack of
// colours, alpha and line width next to gg's, and selects the brush right
// before each Fill or Stroke.
package canvas

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type graphicsState struct {
	fill      gg.RGBA
	stroke    gg.RGBA
	alpha     float64
	lineWidth float64
}

func defaultState() graphicsState {
	return graphicsState{
		fill:      gg.RGBA{A: 1},
		stroke:    gg.RGBA{A: 1},
		alpha:     1,
		lineWidth: 1,
	}
}

// Surface draws on a *gg.Context.
type Surface struct {
	mu    sync.Mutex
	ctx   *gg.Context
	face  font.Face
	state graphicsState
	stack []graphicsState
	err   error
}

var _ ports.Surface = (*Surface)(nil)

// New creates a transparent surface of the given size.
func New(width, height int) *Surface {
	s := &Surface{
		ctx:   gg.NewContext(width, height),
		face:  basicfont.Face7x13,
		state: defaultState(),
	}
	s.ctx.SetLineWidth(1)
	return s
}

// Context exposes the underlying gg context for direct drawing.
func (s *Surface) Context() *gg.Context {
	return s.ctx
}

// Err returns the last rasterization error, if any.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Image()
}

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.SavePNG(path)
}

// EncodePNG writes the current pixels to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.EncodePNG(w)
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

func (s *Surface) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Push()
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return
	}
	s.ctx.Pop()
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.ctx.SetLineWidth(s.state.lineWidth)
}

func (s *Surface) ResetTransform() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Identity()
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.ClearPath()
	s.ctx.Clear()
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Width(), s.ctx.Height()
}

func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", domain.ErrInvalidSize, width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Resize(width, height)
}

func (s *Surface) Translate(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Translate(x, y)
}

func (s *Surface) Scale(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Scale(x, y)
}

func (s *Surface) Rotate(angle float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Rotate(angle)
}

func (s *Surface) SetAlpha(alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.alpha = math.Max(0, math.Min(1, alpha))
}

func (s *Surface) SetFillColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.fill = ParseColor(color)
}

func (s *Surface) SetStrokeColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.stroke = ParseColor(color)
}

func (s *Surface) SetLineWidth(width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.lineWidth = width
	s.ctx.SetLineWidth(width)
}

func (s *Surface) MoveTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.MoveTo(x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.LineTo(x, y)
}

func (s *Surface) Arc(x, y, radius, start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.DrawArc(x, y, radius, start, end)
}

func (s *Surface) Rect(x, y, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.DrawRectangle(x, y, width, height)
}

func (s *Surface) Fill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBrush(s.state.fill)
	if err := s.ctx.Fill(); err != nil {
		s.err = fmt.Errorf("fill: %w", err)
	}
}

func (s *Surface) Stroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBrush(s.state.stroke)
	if err := s.ctx.Stroke(); err != nil {
		s.err = fmt.Errorf("stroke: %w", err)
	}
}

func (s *Surface) setBrush(c gg.RGBA) {
	s.ctx.SetRGBA(c.R, c.G, c.B, c.A*s.state.alpha)
}

// FillText rasterizes str with the 7x13 bitmap font into a mask and copies
// the covered pixels, in the fill colour, through the current transform.
func (s *Surface) FillText(str string, x, y float64) {
	if str == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := s.face.Metrics()
	advance := font.MeasureString(s.face, str)
	mask := image.NewAlpha(image.Rect(0, 0, advance.Ceil(), metrics.Height.Ceil()))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: s.face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	drawer.DrawString(str)

	col := s.state.fill
	col.A *= s.state.alpha
	width, height := s.ctx.Width(), s.ctx.Height()
	b := mask.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if mask.AlphaAt(px, py).A < 128 {
				continue
			}
			tx, ty := s.ctx.TransformPoint(x+float64(px), y+float64(py))
			ix, iy := int(math.Floor(tx)), int(math.Floor(ty))
			if ix < 0 || iy < 0 || ix >= width || iy >= height {
				continue
			}
			s.ctx.SetPixel(ix, iy, col)
		}
	}
}

func (s *Surface) MeasureText(str string) (float64, float64) {
	if str == "" {
		return 0, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(font.MeasureString(s.face, str).Ceil()), float64(s.face.Metrics().Height.Ceil())
}

var namedColors = map[string]gg.RGBA{
	"black":       {A: 1},
	"white":       {R: 1, G: 1, B: 1, A: 1},
	"red":         {R: 1, A: 1},
	"green":       {G: 128.0 / 255, A: 1},
	"lime":        {G: 1, A: 1},
	"blue":        {B: 1, A: 1},
	"yellow":      {R: 1, G: 1, A: 1},
	"gray":        {R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255, A: 1},
	"grey":        {R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255, A: 1},
	"transparent": {},
}

// ParseColor accepts a few CSS colour names and the hex forms gg.Hex supports
// (#rgb, #rgba, #rrggbb, #rrggbbaa). Anything else is opaque black.
func ParseColor(color string) gg.RGBA {
	c := strings.ToLower(strings.TrimSpace(color))
	if named, ok := namedColors[c]; ok {
		return named
	}
	return gg.Hex(c)
}
