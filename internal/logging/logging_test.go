package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ParsesLevel(t *testing.T) {
	logger, err := New("api", "warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("api", "loud", false)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}

type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestFinish(t *testing.T) {
	out := &syncCounter{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, zapcore.InfoLevel)
	logger := zap.New(core)

	assert.Equal(t, 1, Finish(logger, "api stopped", errors.New("connect to db: refused")))
	assert.Equal(t, 1, out.syncs)
	assert.Contains(t, out.String(), `"level":"error"`)
	assert.Contains(t, out.String(), "connect to db: refused")

	out.Reset()
	assert.Equal(t, 0, Finish(logger, "api stopped", nil))
	assert.Equal(t, 2, out.syncs)
	assert.Empty(t, out.String())
}
