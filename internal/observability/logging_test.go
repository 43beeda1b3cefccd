package observability

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/marketplace-service/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		logger, err := NewLogger(config.LoggerConfig{Level: tt.level})
		if err != nil {
			t.Fatalf("level %q: %v", tt.level, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Errorf("level %q: expected %s enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Errorf("level %q: expected %s disabled", tt.level, tt.want-1)
		}
	}
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	if _, err := NewLogger(config.LoggerConfig{Level: "info", Format: "console"}); err != nil {
		t.Fatalf("console logger: %v", err)
	}
}
