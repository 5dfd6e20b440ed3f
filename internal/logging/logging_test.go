// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, quiet.SugaredLogger.Desugar().Core().Enabled(zapcore.WarnLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNopAndWith(t *testing.T) {
	l := Nop().With("pass", "bold-divs")
	require.NotNil(t, l)
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zapcore.ErrorLevel))
	l.Debug("ignored", "k", "v")
	l.Sync()
}
