package logger

import (
	"strings"

	"go.uber.org/zap"
)

var sugar = zap.Must(zap.NewDevelopment()).Sugar()

// Init rebuilds the global logger for the given mode. Call once from main;
// packages log through the package-level helpers before and after.
func Init(mode string) error {
	var cfg zap.Config

	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return err
	}

	sugar = zapLogger.Sugar()
	return nil
}

func Sync() {
	_ = sugar.Sync()
}

func Debug(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	sugar.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	sugar.Fatalw(msg, keysAndValues...)
}
