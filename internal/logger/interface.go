package logger

// Logger defines the logging operations used across the application
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(msg string, fields map[string]interface{})
	LogDebug(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
	LogFatal(err error, msg string)
	WithFields(fields map[string]interface{}) Logger
}
