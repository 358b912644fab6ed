package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/easel/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("surface resize failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, logging.LevelFor(false))

	logger.Debug("tick skipped")
	assert.Empty(t, buf.String())

	logger = logging.NewWithWriter(&buf, logging.LevelFor(true))
	logger.Debug("tick skipped")
	assert.Contains(t, buf.String(), "tick skipped")
}
