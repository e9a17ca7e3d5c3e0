// Package logging is the structured logger used across the classifier. Code
// depends on the Logger interface; the logrus adapter backs it in the CLI and
// MockLogger captures entries in tests.
package logging

// Logger is what the runner, the stores and the commands log through.
// Per-row diagnostics (unmatched subgrupo, unparseable Valor) go through Warn
// with the line and subgrupo as fields, never formatted into the message.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError attaches err to every entry of the returned logger.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger

	// Fatal and Fatalf log and exit the process.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}

// Field is one structured key/value, keyed by the Field* constants.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
