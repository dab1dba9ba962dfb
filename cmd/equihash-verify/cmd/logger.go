package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/equihash-verify/equihash/shared"
)

// zapLogger adapts a *zap.Logger to shared.Logger, the narrow printf-style
// seam the verifier façade logs through: the library stays
// logging-library-agnostic, and the binary wires in the real dependency.
type zapLogger struct {
	l *zap.SugaredLogger
}

func newZapAdapter(l *zap.Logger) shared.Logger {
	return &zapLogger{l: l.Sugar()}
}

func (z *zapLogger) Info(format string, args ...any)    { z.l.Infof(format, args...) }
func (z *zapLogger) Debug(format string, args ...any)   { z.l.Debugf(format, args...) }
func (z *zapLogger) Warning(format string, args ...any) { z.l.Warnf(format, args...) }
func (z *zapLogger) Error(format string, args ...any)   { z.l.Errorf(format, args...) }

func newZapLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}
