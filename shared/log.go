package shared

// Logger is the ambient logging seam used by the verifier façade and its
// callers. It is intentionally narrow: printf-style methods only, no
// structured fields, so that adapting any logging library (zap, log,
// smutil) to it is a few lines.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// NoopLogger discards everything. It is the default used when no logger
// option is supplied.
type NoopLogger struct{}

func (NoopLogger) Info(string, ...any)    {}
func (NoopLogger) Debug(string, ...any)   {}
func (NoopLogger) Warning(string, ...any) {}
func (NoopLogger) Error(string, ...any)   {}
