package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/baweed/shashki/game/config"
)

func TestInitWritesJSONFile(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	path := filepath.Join(t.TempDir(), "logs", "shashki.log")

	err := Init(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	L().Debug("move_accepted", zap.String("game_id", "g1"))
	require.NoError(t, L().Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"msg":"move_accepted"`)
	require.Contains(t, string(raw), `"game_id":"g1"`)
	require.Contains(t, string(raw), `"level":"debug"`)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	require.Equal(t, zapcore.ErrorLevel, parseLevel(" error "))
	require.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
}

func TestSetNilRestoresNop(t *testing.T) {
	Set(nil)
	require.NotNil(t, L())
	L().Info("dropped")
}
