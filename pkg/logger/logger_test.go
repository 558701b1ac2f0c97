package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_LevelFollowsEnvironment(t *testing.T) {
	prod, err := New("orchid-backend", "production")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
	assert.True(t, prod.Core().Enabled(zap.InfoLevel))

	dev, err := New("orchid-backend", "development")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}

func TestInit_ReplacesGlobal(t *testing.T) {
	previous := Log
	t.Cleanup(func() { Log = previous })

	require.NoError(t, Init("orchid-backend", "development"))
	assert.NotSame(t, previous, Log)
	assert.True(t, Log.Core().Enabled(zap.DebugLevel))
}
