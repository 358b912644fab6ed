package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SurfaceContractTest is a reusable test suite that verifies if an adapter complies with ports.Surface.
// newSurface must return a fresh surface of the requested size on every call.
func SurfaceContractTest(t *testing.T, newSurface func(width, height int) ports.Surface) {
	t.Helper()

	t.Run("Size", func(t *testing.T) {
		s := newSurface(120, 80)
		w, h := s.Size()
		assert.Equal(t, 120, w)
		assert.Equal(t, 80, h)
		assert.True(t, ports.IsReady(s))
	})

	t.Run("Resize", func(t *testing.T) {
		s := newSurface(120, 80)
		require.NoError(t, s.Resize(64, 32))
		w, h := s.Size()
		assert.Equal(t, 64, w)
		assert.Equal(t, 32, h)
	})

	t.Run("Resize_Invalid", func(t *testing.T) {
		s := newSurface(120, 80)
		err := s.Resize(0, 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidSize))
		w, h := s.Size()
		assert.Equal(t, 120, w, "failed resize must keep the old size")
		assert.Equal(t, 80, h)
	})

	t.Run("Save_Restore_Balanced", func(t *testing.T) {
		s := newSurface(50, 50)
		assert.NotPanics(t, func() {
			s.Save()
			s.Translate(10, 10)
			s.SetAlpha(0.5)
			s.SetLineWidth(3)
			s.Save()
			s.Scale(2, 2)
			s.Restore()
			s.Restore()
		})
	})

	t.Run("Restore_Unbalanced", func(t *testing.T) {
		s := newSurface(50, 50)
		assert.NotPanics(t, func() { s.Restore() }, "restore with an empty stack is a no-op")
	})

	t.Run("Drawing", func(t *testing.T) {
		s := newSurface(50, 50)
		assert.NotPanics(t, func() {
			s.ResetTransform()
			s.Clear()
			s.SetStrokeColor("#ff0000")
			s.SetFillColor("#00ff00")
			s.MoveTo(0, 0)
			s.LineTo(49, 49)
			s.Stroke()
			s.Arc(25, 25, 10, 0, 6.283185307179586)
			s.Fill()
			s.Rect(1, 1, 5, 5)
			s.Fill()
			s.FillText("fps: 60", 2, 2)
		})
	})

	t.Run("MeasureText", func(t *testing.T) {
		s := newSurface(50, 50)
		w, h := s.MeasureText("frame: 1")
		assert.Greater(t, w, 0.0)
		assert.Greater(t, h, 0.0)
		w, _ = s.MeasureText("")
		assert.Zero(t, w)
	})
}
