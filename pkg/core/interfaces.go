package core

// Logger is the sink for render progress and degraded-resource warnings
type Logger interface {
	Printf(format string, args ...interface{})
}

// LoggerFunc adapts a plain printf-style function to the Logger interface
type LoggerFunc func(format string, args ...interface{})

// Printf calls f
func (f LoggerFunc) Printf(format string, args ...interface{}) {
	f(format, args...)
}

// DiscardLogger drops every message. Used by tests and quiet renders.
var DiscardLogger Logger = LoggerFunc(func(string, ...interface{}) {})
