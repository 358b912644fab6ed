package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// Glyph metrics used by MeasureText; they match a 7x13 bitmap font.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// Call is one recorded surface operation.
type Call struct {
	Op   string
	Args []float64
	Text string
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	if c.Text != "" {
		fmt.Fprintf(&b, " %q", c.Text)
	}
	for _, a := range c.Args {
		fmt.Fprintf(&b, " %g", a)
	}
	return b.String()
}

// GraphicsState is the part of the surface state covered by Save/Restore.
type GraphicsState struct {
	Transform   [6]float64
	Alpha       float64
	FillColor   string
	StrokeColor string
	LineWidth   float64
}

func defaultGraphicsState() GraphicsState {
	return GraphicsState{
		Transform:   [6]float64{1, 0, 0, 1, 0, 0},
		Alpha:       1,
		FillColor:   "#000000",
		StrokeColor: "#000000",
		LineWidth:   1,
	}
}

// Surface implements ports.Surface in memory by recording every call.
// It is used as a headless surface and as a test double.
// Safe for concurrent use.
type Surface struct {
	mu     sync.RWMutex
	width  int
	height int
	ready  bool
	state  GraphicsState
	stack  []GraphicsState
	calls  []Call
}

var _ ports.Surface = (*Surface)(nil)
var _ ports.Readiness = (*Surface)(nil)

// NewSurface creates a ready in-memory surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		ready:  true,
		state:  defaultGraphicsState(),
	}
}

// SetReady toggles readiness, simulating a surface that is not attached yet.
func (s *Surface) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Ready implements ports.Readiness.
func (s *Surface) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Calls returns a copy of the recorded operations.
func (s *Surface) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Ops returns the recorded operation names, in order.
func (s *Surface) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many times op was recorded.
func (s *Surface) Count(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls, keeping size and graphics state.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// State returns the current graphics state.
func (s *Surface) State() GraphicsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Depth returns the number of saved graphics states.
func (s *Surface) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack)
}

func (s *Surface) record(op string, text string, args ...float64) {
	s.calls = append(s.calls, Call{Op: op, Args: args, Text: text})
}

func (s *Surface) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = append(s.stack, s.state)
	s.record("save", "")
}

func (s *Surface) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("restore", "")
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) ResetTransform() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transform = [6]float64{1, 0, 0, 1, 0, 0}
	s.record("reset_transform", "")
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("clear", "")
}

func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", domain.ErrInvalidSize, width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.record("resize", "", float64(width), float64(height))
	return nil
}

func (s *Surface) Translate(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transform[4] += x
	s.state.Transform[5] += y
	s.record("translate", "", x, y)
}

func (s *Surface) Scale(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transform[0] *= x
	s.state.Transform[3] *= y
	s.record("scale", "", x, y)
}

func (s *Surface) Rotate(angle float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("rotate", "", angle)
}

func (s *Surface) SetAlpha(alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Alpha = alpha
	s.record("alpha", "", alpha)
}

func (s *Surface) SetFillColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FillColor = color
	s.record("fill_color", color)
}

func (s *Surface) SetStrokeColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.StrokeColor = color
	s.record("stroke_color", color)
}

func (s *Surface) SetLineWidth(width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LineWidth = width
	s.record("line_width", "", width)
}

func (s *Surface) MoveTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("move_to", "", x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("line_to", "", x, y)
}

func (s *Surface) Arc(x, y, radius, start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("arc", "", x, y, radius, start, end)
}

func (s *Surface) Rect(x, y, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("rect", "", x, y, width, height)
}

func (s *Surface) Fill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("fill", "")
}

func (s *Surface) Stroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("stroke", "")
}

func (s *Surface) FillText(text string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("fill_text", text, x, y)
}

func (s *Surface) MeasureText(text string) (float64, float64) {
	if text == "" {
		return 0, 0
	}
	return float64(len([]rune(text)) * GlyphWidth), GlyphHeight
}
