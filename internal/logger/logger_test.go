package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantLevel zapcore.Level
		wantError bool
	}{
		{name: "production default", env: EnvProduction, wantLevel: zapcore.InfoLevel},
		{name: "development default", env: "development", wantLevel: zapcore.DebugLevel},
		{name: "explicit level", env: EnvProduction, level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "bad level", env: EnvProduction, level: "loud", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.env, tt.level)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.Level())
		})
	}
}
