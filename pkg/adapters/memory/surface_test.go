package memory_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
)

func TestSurface_Contract(t *testing.T) {
	tests.SurfaceContractTest(t, func(w, h int) ports.Surface {
		return memory.NewSurface(w, h)
	})
}

func TestSurface_SaveRestoreState(t *testing.T) {
	s := memory.NewSurface(10, 10)

	s.SetFillColor("#111111")
	s.Save()
	s.SetFillColor("#222222")
	s.Translate(5, 5)
	assert.Equal(t, 1, s.Depth())
	s.Restore()

	assert.Equal(t, "#111111", s.State().FillColor)
	assert.Equal(t, 0.0, s.State().Transform[4])
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, 1, s.Count("save"))
	assert.Equal(t, 1, s.Count("restore"))
}

func TestSurface_Readiness(t *testing.T) {
	s := memory.NewSurface(10, 10)
	assert.True(t, ports.IsReady(s))

	s.SetReady(false)
	assert.False(t, ports.IsReady(s))

	assert.False(t, ports.IsReady(nil))
}

func TestSurface_Calls(t *testing.T) {
	s := memory.NewSurface(10, 10)
	s.MoveTo(1, 2)
	s.FillText("hi", 3, 4)

	calls := s.Calls()
	assert.Equal(t, "move_to 1 2", calls[0].String())
	assert.Equal(t, `fill_text "hi" 3 4`, calls[1].String())

	s.Reset()
	assert.Empty(t, s.Ops())
}
