// Package log provides the diagnostic logger for gsc. Results meant for
// the user (listings, file contents, status tables) go to stdout from the
// client; everything here is progress and warning output on stderr, with
// the level driven by the -v/-q flags.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	base        *zap.Logger
	sugar       *zap.SugaredLogger
)

func init() {
	encCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		atomicLevel,
	)
	base = zap.New(core)
	sugar = base.Sugar()
}

// SetVerbosity maps the accumulated -v/-q flag count to a level.
// 0 is the default (progress messages on), negative values quiet
// progress down to warnings and then errors, positive values enable
// debug output such as request URLs.
func SetVerbosity(v int) {
	switch {
	case v <= -2:
		atomicLevel.SetLevel(zapcore.ErrorLevel)
	case v == -1:
		atomicLevel.SetLevel(zapcore.WarnLevel)
	case v == 0:
		atomicLevel.SetLevel(zapcore.InfoLevel)
	default:
		atomicLevel.SetLevel(zapcore.DebugLevel)
	}
}

func Sync() {
	_ = base.Sync()
}

func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Error(format string, args ...any) {
	sugar.Errorf(format, args...)
}

// Errorln writes directly to stderr without level filtering. The final
// error report from the command dispatcher uses it so that -qq cannot
// swallow a fatal error.
func Errorln(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}
