package util

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		env        string
		debugLevel bool
	}{
		{"production", false},
		{"Production", false},
		{"development", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			logger := NewLogger(tt.env)
			if got := logger.Desugar().Core().Enabled(zapcore.DebugLevel); got != tt.debugLevel {
				t.Errorf("debug enabled = %v, expected %v", got, tt.debugLevel)
			}
		})
	}
}
