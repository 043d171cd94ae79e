package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		Logger.Infow("before initialize", FieldCount, 1)
	})
}

func TestInitializeConsole(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, Initialize(false, 2))
	require.NotNil(t, Logger)
	assert.True(t, Logger.Desugar().Core().Enabled(-1)) // debug
}

func TestInitializeLevels(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, Initialize(false, 0))
	core := Logger.Desugar().Core()
	assert.False(t, core.Enabled(0)) // info
	assert.True(t, core.Enabled(1))  // warn

	require.NoError(t, Initialize(true, 1))
	core = Logger.Desugar().Core()
	assert.True(t, core.Enabled(0))
	assert.False(t, core.Enabled(-1))
}

func TestComponentLogger(t *testing.T) {
	l := ComponentLogger("pipeline")
	require.NotNil(t, l)
	assert.NotPanics(t, func() {
		l.Debugw("named", FieldComponent, "Card")
	})
}
