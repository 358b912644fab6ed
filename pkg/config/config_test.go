package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/config"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "easel.yaml", `
name: demo
width: 320
height: 200
auto_start: false
debug: true
resize_delay_ms: 150
grid: 25
environment:
  location: bottom-right
  padding: 4
redis:
  addr: localhost:6379
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 320, cfg.Width)
	assert.False(t, cfg.AutoStart)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 150*time.Millisecond, cfg.ResizeDelay())
	assert.True(t, cfg.AutoResetContext, "unset fields keep their defaults")
	assert.Equal(t, "pulse", cfg.Scene)
	assert.Equal(t, "easel:frames", cfg.Redis.Channel)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "easel.json", `{"width": 100, "height": 50, "grid": true, "environment": "#fff"}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, true, cfg.Grid)
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "width: [1, 2\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, config.Default().Validate())

	cfg := config.Default()
	cfg.Width = 0
	cfg.FPS = -1
	cfg.Grid = []string{"nope"}
	cfg.Environment = map[string]any{"location": "middle"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
	assert.Contains(t, err.Error(), "surface size")
	assert.Contains(t, err.Error(), "fps")
	assert.Contains(t, err.Error(), "grid")
	assert.Contains(t, err.Error(), "environment")
}

func TestOptions_BuildEngine(t *testing.T) {
	cfg := config.Default()
	cfg.AutoStart = false
	cfg.Debug = true
	cfg.Grid = 10

	opts, err := cfg.Options()
	require.NoError(t, err)

	eng, err := easel.New(memory.NewSurface(cfg.Width, cfg.Height), 0, opts...)
	require.NoError(t, err)

	_, err = eng.Debug()
	assert.NoError(t, err)
	assert.False(t, eng.Status().AutoStart)
}
