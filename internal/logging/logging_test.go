package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{verbose: false, wantDebug: false},
		{verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.verbose)
		got := logger.Desugar().Core().Enabled(zapcore.DebugLevel)
		if got != tt.wantDebug {
			t.Errorf("NewLogger(%v) debug enabled = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
	}
}

func TestNopAndChildren(t *testing.T) {
	logger := Nop().Named("timeline").With("session", "abc")
	logger.Infow("ignored", "k", 1)
	logger.Sync()
}
