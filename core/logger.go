package core

// Logger logs application messages to the configured sink(s).
// Implementations may inspect args for known types (eg. the session's
// account.Parent) to enrich the report.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
