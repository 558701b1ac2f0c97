package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const productionEnvironment = "production"

// Log is the global logger instance. It discards everything until Init is called,
// so packages and tests that never initialise logging stay quiet.
var Log = zap.NewNop()

// New builds a logger for environment. Production writes JSON at info level,
// any other environment writes colored console output at debug level.
// Every entry carries the service name and environment.
func New(service, environment string) (*zap.Logger, error) {
	var config zap.Config

	if environment == productionEnvironment {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	config.InitialFields = map[string]any{
		"service":     service,
		"environment": environment,
	}

	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

// Init replaces the global logger with one built by New.
func Init(service, environment string) error {
	built, err := New(service, environment)
	if err != nil {
		return err
	}
	Log = built
	return nil
}

// Sync flushes any buffered log entries. Call it before the process exits.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
