package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base    = zap.NewNop()
	sugared = base.Sugar()
	logFile *os.File
)

// InitLogger writes logs to the console and, when filename is set, to that
// file as well. level is one of debug, info, warn, error.
func InitLogger(filename string, level string) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl := parseLevel(level)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), lvl),
	}

	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), lvl))
	}

	Set(zap.New(zapcore.NewTee(cores...), zap.AddCaller()))
	return nil
}

// Set replaces the package logger.
func Set(l *zap.Logger) {
	base = l
	sugared = l.Sugar()
}

// L returns the structured logger.
func L() *zap.Logger {
	return base
}

// Close flushes the logger, closes the log file and falls back to a no-op
// logger.
func Close() {
	_ = base.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Set(zap.NewNop())
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func Info(args ...interface{}) {
	sugared.Info(args...)
}

func Infof(format string, v ...interface{}) {
	sugared.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	sugared.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	sugared.Errorf(format, v...)
}

func Debugf(format string, v ...interface{}) {
	sugared.Debugf(format, v...)
}
