package teamcity

// Logger receives progress and diagnostic messages. Messages are printf-style format strings.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

func loggerOrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger
	}
	return logger
}
